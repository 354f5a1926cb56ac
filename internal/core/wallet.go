package core

import (
	"fmt"
	"time"
)

// Wallet is a MoneyLover account holding transactions in one or more
// currencies. Balance entries are kept opaque; the service reports them as
// a list of currency-to-amount records whose shape varies per wallet type.
type Wallet struct {
	ID                      string
	Name                    string
	CurrencyID              int64
	Owner                   string
	TransactionNotification bool
	Archived                bool
	AccountType             int64
	ExcludeTotal            bool
	Icon                    string
	ListUser                []map[string]any
	CreatedAt               time.Time
	UpdateAt                time.Time
	IsDelete                bool
	Balance                 []map[string]any
	Others                  map[string]any
}

var walletKeys = []string{
	"_id", "name", "currency_id", "owner", "transaction_notification",
	"archived", "account_type", "exclude_total", "icon", "listUser",
	"createdAt", "updateAt", "isDelete", "balance",
}

// DecodeWallet maps a raw wallet payload onto a Wallet. Timestamps absent
// from the payload default to the decode-time wall clock.
func DecodeWallet(m map[string]any) Wallet {
	return Wallet{
		ID:                      stringField(m, "_id"),
		Name:                    stringField(m, "name"),
		CurrencyID:              intField(m, "currency_id"),
		Owner:                   stringField(m, "owner"),
		TransactionNotification: boolField(m, "transaction_notification"),
		Archived:                boolField(m, "archived"),
		AccountType:             intField(m, "account_type"),
		ExcludeTotal:            boolField(m, "exclude_total"),
		Icon:                    stringField(m, "icon"),
		ListUser:                objectsField(m, "listUser"),
		CreatedAt:               timeField(m, "createdAt"),
		UpdateAt:                timeField(m, "updateAt"),
		IsDelete:                boolField(m, "isDelete"),
		Balance:                 objectsField(m, "balance"),
		Others:                  othersOf(m, walletKeys...),
	}
}

func (w Wallet) MarshalJSON() ([]byte, error) {
	return mergeOthers(map[string]any{
		"_id":                      w.ID,
		"name":                     w.Name,
		"currency_id":              w.CurrencyID,
		"owner":                    w.Owner,
		"transaction_notification": w.TransactionNotification,
		"archived":                 w.Archived,
		"account_type":             w.AccountType,
		"exclude_total":            w.ExcludeTotal,
		"icon":                     w.Icon,
		"listUser":                 w.ListUser,
		"createdAt":                w.CreatedAt,
		"updateAt":                 w.UpdateAt,
		"isDelete":                 w.IsDelete,
		"balance":                  w.Balance,
	}, w.Others)
}

func (w Wallet) String() string {
	if len(w.Balance) > 0 {
		return fmt.Sprintf("Wallet[%s %s cur:%d bal:%v]", w.ID, w.Name, w.CurrencyID, w.Balance)
	}
	return fmt.Sprintf("Wallet[%s %s cur:%d]", w.ID, w.Name, w.CurrencyID)
}
