package core

import (
	"fmt"
	"time"
)

// Campaign is an event or saving goal that transactions can be tagged with.
type Campaign struct {
	ID          string
	Name        string
	Icon        string
	Type        int64
	StartAmount int64
	GoalAmount  int64
	Owner       string
	EndDate     time.Time
	LastEditBy  string
	TokenDevice string
	CurrencyID  int64
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsDelete    bool
	Status      bool
	Others      map[string]any
}

var campaignKeys = []string{
	"_id", "name", "icon", "type", "start_amount", "goal_amount", "owner",
	"end_date", "lastEditBy", "tokenDevice", "currency_id", "isPublic",
	"created_at", "updated_at", "isDelete", "status",
}

// DecodeCampaign maps a raw campaign payload onto a Campaign. Unparseable
// dates default to the decode-time wall clock.
func DecodeCampaign(m map[string]any) Campaign {
	return Campaign{
		ID:          stringField(m, "_id"),
		Name:        stringField(m, "name"),
		Icon:        stringField(m, "icon"),
		Type:        intField(m, "type"),
		StartAmount: intField(m, "start_amount"),
		GoalAmount:  intField(m, "goal_amount"),
		Owner:       stringField(m, "owner"),
		EndDate:     timeField(m, "end_date"),
		LastEditBy:  stringField(m, "lastEditBy"),
		TokenDevice: stringField(m, "tokenDevice"),
		CurrencyID:  intField(m, "currency_id"),
		IsPublic:    boolField(m, "isPublic"),
		CreatedAt:   timeField(m, "created_at"),
		UpdatedAt:   timeField(m, "updated_at"),
		IsDelete:    boolField(m, "isDelete"),
		Status:      boolField(m, "status"),
		Others:      othersOf(m, campaignKeys...),
	}
}

func (c Campaign) MarshalJSON() ([]byte, error) {
	return mergeOthers(map[string]any{
		"_id":          c.ID,
		"name":         c.Name,
		"icon":         c.Icon,
		"type":         c.Type,
		"start_amount": c.StartAmount,
		"goal_amount":  c.GoalAmount,
		"owner":        c.Owner,
		"end_date":     c.EndDate,
		"lastEditBy":   c.LastEditBy,
		"tokenDevice":  c.TokenDevice,
		"currency_id":  c.CurrencyID,
		"isPublic":     c.IsPublic,
		"created_at":   c.CreatedAt,
		"updated_at":   c.UpdatedAt,
		"isDelete":     c.IsDelete,
		"status":       c.Status,
	}, c.Others)
}

func (c Campaign) String() string {
	return fmt.Sprintf("Campaign[%s %s %d]", c.ID, c.Name, c.Type)
}
