// Package storage persists a local mirror of wallets and categories for
// offline inspection. Rows are keyed by entity id with last-write-wins
// upserts; nested fields are stored as JSON-encoded blobs. The mirror is
// optional and never required for live API correctness.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"moneylover/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when the requested entity has no mirror row.
var ErrNotFound = errors.New("not found in mirror")

const timeLayout = time.RFC3339Nano

type MirrorRepository struct {
	db *sql.DB
}

func NewMirrorRepository(dbPath string) (*MirrorRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &MirrorRepository{db: db}, nil
}

func (r *MirrorRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveWallet upserts one wallet row in a single statement, so a row is
// never partially written.
func (r *MirrorRepository) SaveWallet(ctx context.Context, w core.Wallet) error {
	listUser, err := json.Marshal(w.ListUser)
	if err != nil {
		return fmt.Errorf("encode list_user: %w", err)
	}
	balance, err := json.Marshal(w.Balance)
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}
	others, err := json.Marshal(w.Others)
	if err != nil {
		return fmt.Errorf("encode others: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO wallet
		(
			id, name, currency_id, owner, transaction_notification, archived,
			account_type, exclude_total, icon, created_at, update_at, is_delete,
			list_user, balance, others
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.CurrencyID, w.Owner, w.TransactionNotification, w.Archived,
		w.AccountType, w.ExcludeTotal, w.Icon,
		w.CreatedAt.UTC().Format(timeLayout), w.UpdateAt.UTC().Format(timeLayout),
		w.IsDelete, string(listUser), string(balance), string(others),
	)
	if err != nil {
		return fmt.Errorf("save wallet %s: %w", w.ID, err)
	}

	slog.DebugContext(ctx, "wallet mirrored", "id", w.ID, "name", w.Name)
	return nil
}

// LoadWallet reads one wallet row back; ErrNotFound when absent.
func (r *MirrorRepository) LoadWallet(ctx context.Context, id string) (*core.Wallet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, currency_id, owner, transaction_notification, archived,
			account_type, exclude_total, icon, created_at, update_at, is_delete,
			list_user, balance, others
		FROM wallet
		WHERE id = ?`, id)

	var w core.Wallet
	var createdAt, updateAt, listUser, balance, others string
	err := row.Scan(
		&w.ID, &w.Name, &w.CurrencyID, &w.Owner, &w.TransactionNotification, &w.Archived,
		&w.AccountType, &w.ExcludeTotal, &w.Icon, &createdAt, &updateAt, &w.IsDelete,
		&listUser, &balance, &others,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wallet %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load wallet %s: %w", id, err)
	}

	if w.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of wallet %s: %w", id, err)
	}
	if w.UpdateAt, err = time.Parse(timeLayout, updateAt); err != nil {
		return nil, fmt.Errorf("parse update_at of wallet %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(listUser), &w.ListUser); err != nil {
		return nil, fmt.Errorf("decode list_user of wallet %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(balance), &w.Balance); err != nil {
		return nil, fmt.Errorf("decode balance of wallet %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(others), &w.Others); err != nil {
		return nil, fmt.Errorf("decode others of wallet %s: %w", id, err)
	}

	return &w, nil
}

// SaveCategory upserts one category row. An empty parent is stored as NULL.
func (r *MirrorRepository) SaveCategory(ctx context.Context, c core.Category) error {
	others, err := json.Marshal(c.Others)
	if err != nil {
		return fmt.Errorf("encode others: %w", err)
	}

	parent := sql.NullString{String: c.Parent, Valid: c.Parent != ""}
	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO category
		(id, parent, account, icon, metadata, name, type, others)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, parent, c.Account, c.Icon, c.Metadata, c.Name, int64(c.Type), string(others),
	)
	if err != nil {
		return fmt.Errorf("save category %s: %w", c.ID, err)
	}

	slog.DebugContext(ctx, "category mirrored", "id", c.ID, "name", c.Name)
	return nil
}

// LoadCategory reads one category row back; ErrNotFound when absent.
func (r *MirrorRepository) LoadCategory(ctx context.Context, id string) (*core.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, parent, account, icon, metadata, name, type, others
		FROM category
		WHERE id = ?`, id)

	var c core.Category
	var parent sql.NullString
	var typ int64
	var others string
	err := row.Scan(&c.ID, &parent, &c.Account, &c.Icon, &c.Metadata, &c.Name, &typ, &others)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", id, err)
	}

	c.Parent = parent.String
	c.Type = core.CategoryType(typ)
	if err := json.Unmarshal([]byte(others), &c.Others); err != nil {
		return nil, fmt.Errorf("decode others of category %s: %w", id, err)
	}

	return &c, nil
}
