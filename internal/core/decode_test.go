package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectKeepsNumberFidelity(t *testing.T) {
	m, err := ParseObject([]byte(`{"amount": 10.123456789012345678, "n": 42}`))
	require.NoError(t, err)

	// json.Number keeps the original text, a float64 would not.
	assert.Equal(t, json.Number("10.123456789012345678"), m["amount"])
}

func TestParseObjectRejectsNonObject(t *testing.T) {
	_, err := ParseObject([]byte(`[1, 2]`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestParseArray(t *testing.T) {
	items, err := ParseArray([]byte(`[{"a": 1}, {"b": 2}]`))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = ParseArray([]byte(`[{"a": 1}, "nope"]`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Error(), "element 1")
}

func TestFieldHelpersDefaultOnMissingOrWrongType(t *testing.T) {
	m, err := ParseObject([]byte(`{"s": 7, "b": "yes", "n": "many", "l": "x"}`))
	require.NoError(t, err)

	assert.Equal(t, "", stringField(m, "s"))
	assert.False(t, boolField(m, "b"))
	assert.Equal(t, int64(0), intField(m, "n"))
	assert.Nil(t, stringsField(m, "l"))
	assert.Nil(t, objectsField(m, "missing"))
}

func TestIntFieldTruncatesFractional(t *testing.T) {
	m, err := ParseObject([]byte(`{"n": 3.9}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), intField(m, "n"))
}

func TestTimeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"explicit offset", `{"t": "2024-03-01T12:30:00+01:00"}`, time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("", 3600))},
		{"zulu suffix", `{"t": "2024-03-01T12:30:00.000Z"}`, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseObject([]byte(tt.input))
			require.NoError(t, err)
			assert.True(t, timeField(m, "t").Equal(tt.want))
		})
	}
}

func TestTimeFieldFallsBackToNow(t *testing.T) {
	m, err := ParseObject([]byte(`{"t": "not a timestamp"}`))
	require.NoError(t, err)

	before := time.Now()
	got := timeField(m, "t")
	after := time.Now()
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))

	got = timeField(m, "missing")
	assert.False(t, got.Before(before))
}

func TestOthersOfIsExactComplement(t *testing.T) {
	m, err := ParseObject([]byte(`{"_id": "w1", "name": "Cash", "futureField": {"x": 1}, "another": true}`))
	require.NoError(t, err)

	others := othersOf(m, "_id", "name")
	assert.Len(t, others, 2)
	assert.Contains(t, others, "futureField")
	assert.Contains(t, others, "another")
	assert.NotContains(t, others, "_id")
	assert.NotContains(t, others, "name")
}
