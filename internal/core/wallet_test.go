package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletPayload = `{
	"_id": "5f2b",
	"name": "Cash",
	"currency_id": 2,
	"owner": "u1",
	"transaction_notification": true,
	"archived": false,
	"account_type": 0,
	"exclude_total": false,
	"icon": "icon_54",
	"listUser": [{"_id": "u1", "email": "me@example.com"}],
	"createdAt": "2020-08-05T19:14:22.000Z",
	"updateAt": "2021-01-10T08:00:00.000Z",
	"isDelete": false,
	"balance": [{"2": "1250.75"}],
	"sortIndex": 3,
	"enableNotification": true
}`

func TestDecodeWallet(t *testing.T) {
	m, err := ParseObject([]byte(walletPayload))
	require.NoError(t, err)

	w := DecodeWallet(m)
	assert.Equal(t, "5f2b", w.ID)
	assert.Equal(t, "Cash", w.Name)
	assert.Equal(t, int64(2), w.CurrencyID)
	assert.Equal(t, "u1", w.Owner)
	assert.True(t, w.TransactionNotification)
	assert.Equal(t, "icon_54", w.Icon)
	require.Len(t, w.ListUser, 1)
	assert.Equal(t, "me@example.com", w.ListUser[0]["email"])
	assert.True(t, w.CreatedAt.Equal(time.Date(2020, 8, 5, 19, 14, 22, 0, time.UTC)))
	require.Len(t, w.Balance, 1)

	// Unclaimed keys survive, claimed ones do not.
	assert.Len(t, w.Others, 2)
	assert.Contains(t, w.Others, "sortIndex")
	assert.Contains(t, w.Others, "enableNotification")
}

func TestWalletRoundTripKeepsOthers(t *testing.T) {
	m, err := ParseObject([]byte(walletPayload))
	require.NoError(t, err)

	raw, err := json.Marshal(DecodeWallet(m))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Cash", out["name"])
	assert.Equal(t, float64(3), out["sortIndex"])
	assert.Equal(t, true, out["enableNotification"])
}

func TestDecodeWalletDefaults(t *testing.T) {
	w := DecodeWallet(map[string]any{})
	assert.Equal(t, "", w.ID)
	assert.Equal(t, int64(0), w.CurrencyID)
	assert.Nil(t, w.ListUser)
	assert.Nil(t, w.Balance)
	assert.False(t, w.CreatedAt.IsZero())
	assert.Empty(t, w.Others)
}
