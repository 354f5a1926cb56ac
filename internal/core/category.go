package core

import "fmt"

// CategoryType distinguishes income from expense categories. The service
// uses the numeric values 1 and 2 on the wire; anything else is rejected
// at decode time.
type CategoryType int64

const (
	CategoryTypeIncome  CategoryType = 1
	CategoryTypeExpense CategoryType = 2
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

func (t CategoryType) String() string {
	switch t {
	case CategoryTypeIncome:
		return "income"
	case CategoryTypeExpense:
		return "expense"
	default:
		return fmt.Sprintf("CategoryType(%d)", int64(t))
	}
}

// Category is a transaction category. Parent holds the parent category id,
// or the empty string for a top-level category.
type Category struct {
	ID       string
	Parent   string
	Account  string
	Icon     string
	Metadata string
	Name     string
	Type     CategoryType
	Others   map[string]any
}

var categoryKeys = []string{"_id", "parent", "account", "icon", "metadata", "name", "type"}

// DecodeCategory maps a raw category payload onto a Category. The parent
// field arrives either as a bare id string or as an embedded object; both
// normalize to the id. An absent type defaults to income; a present type
// outside {1, 2} fails with a DecodeError.
func DecodeCategory(m map[string]any) (Category, error) {
	typ := CategoryTypeIncome
	if _, ok := m["type"]; ok {
		typ = CategoryType(intField(m, "type"))
		if !typ.Valid() {
			return Category{}, &DecodeError{
				Entity: "Category",
				Key:    "type",
				Reason: fmt.Sprintf("unknown category type %d", int64(typ)),
			}
		}
	}

	var parent string
	switch p := m["parent"].(type) {
	case string:
		parent = p
	case map[string]any:
		parent = stringField(p, "_id")
	}

	return Category{
		ID:       stringField(m, "_id"),
		Parent:   parent,
		Account:  stringField(m, "account"),
		Icon:     stringField(m, "icon"),
		Metadata: stringField(m, "metadata"),
		Name:     stringField(m, "name"),
		Type:     typ,
		Others:   othersOf(m, categoryKeys...),
	}, nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	named := map[string]any{
		"_id":      c.ID,
		"account":  c.Account,
		"icon":     c.Icon,
		"metadata": c.Metadata,
		"name":     c.Name,
		"type":     int64(c.Type),
	}
	if c.Parent != "" {
		named["parent"] = c.Parent
	}
	return mergeOthers(named, c.Others)
}

func (c Category) String() string {
	return fmt.Sprintf("Category[%s %s %s]", c.ID, c.Name, c.Type)
}
