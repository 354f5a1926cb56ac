package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCategory(t *testing.T) {
	m, err := ParseObject([]byte(`{
		"_id": "c1", "name": "Salary", "type": 1, "account": "w1",
		"icon": "ic_salary", "metadata": "IS_SALARY", "extra": "kept"
	}`))
	require.NoError(t, err)

	cat, err := DecodeCategory(m)
	require.NoError(t, err)
	assert.Equal(t, "c1", cat.ID)
	assert.Equal(t, "Salary", cat.Name)
	assert.Equal(t, CategoryTypeIncome, cat.Type)
	assert.Equal(t, "", cat.Parent)
	assert.Equal(t, "kept", cat.Others["extra"])
}

func TestDecodeCategoryRejectsUnknownType(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"zero", `{"_id": "c1", "type": 0}`},
		{"out of range", `{"_id": "c1", "type": 3}`},
		{"wrong kind", `{"_id": "c1", "type": "income"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseObject([]byte(tt.payload))
			require.NoError(t, err)

			_, err = DecodeCategory(m)
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "type", decodeErr.Key)
		})
	}
}

func TestDecodeCategoryMissingTypeDefaultsToIncome(t *testing.T) {
	m, err := ParseObject([]byte(`{"_id": "c1", "name": "Salary"}`))
	require.NoError(t, err)

	cat, err := DecodeCategory(m)
	require.NoError(t, err)
	assert.Equal(t, CategoryTypeIncome, cat.Type)
}

func TestDecodeCategoryParentDialects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"bare id", `{"_id": "c2", "type": 2, "parent": "c1"}`, "c1"},
		{"embedded object", `{"_id": "c2", "type": 2, "parent": {"_id": "c1", "name": "Food"}}`, "c1"},
		{"absent", `{"_id": "c2", "type": 2}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseObject([]byte(tt.payload))
			require.NoError(t, err)

			cat, err := DecodeCategory(m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cat.Parent)
		})
	}
}

func TestCategoryMarshalOmitsEmptyParent(t *testing.T) {
	raw, err := json.Marshal(Category{ID: "c1", Name: "Food", Type: CategoryTypeExpense})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "parent")

	raw, err = json.Marshal(Category{ID: "c2", Parent: "c1", Name: "Lunch", Type: CategoryTypeExpense})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "c1", m["parent"])
}

func TestCategoryTypeString(t *testing.T) {
	assert.Equal(t, "income", CategoryTypeIncome.String())
	assert.Equal(t, "expense", CategoryTypeExpense.String())
	assert.Equal(t, "CategoryType(9)", CategoryType(9).String())
}
