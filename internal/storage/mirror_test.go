package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneylover/internal/core"
)

func newTestMirror(t *testing.T) *MirrorRepository {
	t.Helper()
	mirror, err := NewMirrorRepository(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { mirror.Close() })
	return mirror
}

func TestWalletRoundTrip(t *testing.T) {
	mirror := newTestMirror(t)
	ctx := context.Background()

	wallet := core.Wallet{
		ID:                      "w1",
		Name:                    "Cash",
		CurrencyID:              2,
		Owner:                   "u1",
		TransactionNotification: true,
		AccountType:             1,
		Icon:                    "icon_54",
		ListUser:                []map[string]any{{"_id": "u1"}},
		CreatedAt:               time.Date(2020, 8, 5, 19, 14, 22, 0, time.UTC),
		UpdateAt:                time.Date(2021, 1, 10, 8, 0, 0, 0, time.UTC),
		Balance:                 []map[string]any{{"2": "1250.75"}},
		Others:                  map[string]any{"sortIndex": float64(3)},
	}
	require.NoError(t, mirror.SaveWallet(ctx, wallet))

	got, err := mirror.LoadWallet(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, wallet.Name, got.Name)
	assert.Equal(t, wallet.CurrencyID, got.CurrencyID)
	assert.True(t, got.CreatedAt.Equal(wallet.CreatedAt))
	assert.True(t, got.UpdateAt.Equal(wallet.UpdateAt))
	assert.Equal(t, wallet.ListUser, got.ListUser)
	assert.Equal(t, wallet.Balance, got.Balance)
	assert.Equal(t, wallet.Others, got.Others)
}

func TestSaveWalletUpserts(t *testing.T) {
	mirror := newTestMirror(t)
	ctx := context.Background()

	wallet := core.Wallet{ID: "w1", Name: "Cash", CreatedAt: time.Now(), UpdateAt: time.Now()}
	require.NoError(t, mirror.SaveWallet(ctx, wallet))

	wallet.Name = "Cash renamed"
	require.NoError(t, mirror.SaveWallet(ctx, wallet))

	got, err := mirror.LoadWallet(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Cash renamed", got.Name)

	var count int
	require.NoError(t, mirror.db.QueryRow("SELECT COUNT(*) FROM wallet").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoadWalletNotFound(t *testing.T) {
	mirror := newTestMirror(t)
	_, err := mirror.LoadWallet(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRoundTrip(t *testing.T) {
	mirror := newTestMirror(t)
	ctx := context.Background()

	cat := core.Category{
		ID:       "c2",
		Parent:   "c1",
		Account:  "w1",
		Icon:     "ic_food",
		Metadata: "IS_FOOD",
		Name:     "Lunch",
		Type:     core.CategoryTypeExpense,
		Others:   map[string]any{"custom": true},
	}
	require.NoError(t, mirror.SaveCategory(ctx, cat))

	got, err := mirror.LoadCategory(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, cat.Parent, got.Parent)
	assert.Equal(t, cat.Type, got.Type)
	assert.Equal(t, cat.Others, got.Others)
}

func TestCategoryEmptyParentStoredAsNull(t *testing.T) {
	mirror := newTestMirror(t)
	ctx := context.Background()

	require.NoError(t, mirror.SaveCategory(ctx, core.Category{
		ID: "c1", Name: "Food", Type: core.CategoryTypeExpense,
	}))

	var nullParents int
	require.NoError(t, mirror.db.QueryRow("SELECT COUNT(*) FROM category WHERE parent IS NULL").Scan(&nullParents))
	assert.Equal(t, 1, nullParents)

	got, err := mirror.LoadCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "", got.Parent)
}

func TestLoadCategoryNotFound(t *testing.T) {
	mirror := newTestMirror(t)
	_, err := mirror.LoadCategory(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
