package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an income or expense entry. Account and Category are
// nested-decoded only when the service embeds them in the payload.
type Transaction struct {
	ID            string
	Note          string
	Account       *Wallet
	Category      *Category
	Amount        decimal.Decimal
	Date          time.Time
	Images        []string
	ExcludeReport bool
	Campaigns     []Campaign
	With          []string
	Address       *Address
	Others        map[string]any
}

var transactionKeys = []string{
	"_id", "note", "account", "category", "amount", "displayDate",
	"images", "exclude_report", "campaign", "with", "address",
}

func decimalField(m map[string]any, key string) decimal.Decimal {
	switch v := m[key].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}

// DecodeTransaction maps a raw transaction payload onto a Transaction.
// The account and category arrive either as bare id strings or as embedded
// objects; both normalize to a record, id-only in the string case. It fails
// only when an embedded category is itself undecodable.
func DecodeTransaction(m map[string]any) (Transaction, error) {
	t := Transaction{
		ID:            stringField(m, "_id"),
		Note:          stringField(m, "note"),
		Amount:        decimalField(m, "amount"),
		Date:          timeField(m, "displayDate"),
		Images:        stringsField(m, "images"),
		ExcludeReport: boolField(m, "exclude_report"),
		With:          stringsField(m, "with"),
		Others:        othersOf(m, transactionKeys...),
	}

	switch acc := m["account"].(type) {
	case string:
		t.Account = &Wallet{ID: acc}
	case map[string]any:
		w := DecodeWallet(acc)
		t.Account = &w
	}
	switch cat := m["category"].(type) {
	case string:
		t.Category = &Category{ID: cat}
	case map[string]any:
		c, err := DecodeCategory(cat)
		if err != nil {
			return Transaction{}, err
		}
		t.Category = &c
	}
	for _, cm := range objectsField(m, "campaign") {
		t.Campaigns = append(t.Campaigns, DecodeCampaign(cm))
	}
	if s, ok := m["address"].(string); ok && s != "" {
		a := ParseAddress(s)
		t.Address = &a
	}

	return t, nil
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	named := map[string]any{
		"_id":            t.ID,
		"note":           t.Note,
		"amount":         json.Number(t.Amount.String()),
		"displayDate":    t.Date,
		"images":         t.Images,
		"exclude_report": t.ExcludeReport,
		"with":           t.With,
	}
	if t.Account != nil {
		named["account"] = t.Account
	}
	if t.Category != nil {
		named["category"] = t.Category
	}
	if len(t.Campaigns) > 0 {
		named["campaign"] = t.Campaigns
	}
	if t.Address != nil {
		raw, err := json.Marshal(t.Address)
		if err != nil {
			return nil, err
		}
		named["address"] = string(raw)
	}
	return mergeOthers(named, t.Others)
}

func (t Transaction) String() string {
	return fmt.Sprintf("Tx[%v %s %s %s]", t.Date, t.Amount, t.Category, t.Account)
}

// TransactionInput is an entry to be posted to the service. It is outbound
// only and never round-tripped back.
type TransactionInput struct {
	Account  string
	Category string
	Amount   decimal.Decimal
	Note     string
	Date     time.Time
}

// EncodeJSON renders the input as the JSON string the transInfo field of
// the transaction add endpoint expects.
func (t TransactionInput) EncodeJSON() (string, error) {
	raw, err := json.Marshal(map[string]any{
		"account":     t.Account,
		"category":    t.Category,
		"amount":      json.Number(t.Amount.String()),
		"note":        t.Note,
		"displayDate": t.Date.Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeForm renders the input as the flat form fields the alternate add
// dialect expects, with the date at day precision.
func (t TransactionInput) EncodeForm() url.Values {
	form := url.Values{}
	form.Set("account", t.Account)
	form.Set("category", t.Category)
	form.Set("amount", t.Amount.String())
	form.Set("note", t.Note)
	form.Set("displayDate", t.Date.Format("2006-01-02"))
	return form
}

func (t TransactionInput) String() string {
	return fmt.Sprintf("Tx[%v %s %s %s]", t.Date, t.Amount, t.Category, t.Account)
}
