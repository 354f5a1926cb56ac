package core

import "fmt"

// Address is the merchant address attached to a transaction. The service
// embeds it as a JSON string inside the transaction payload.
type Address struct {
	Name    string
	Icon    string
	Details string
	Others  map[string]any
}

// DecodeAddress maps a raw address object onto an Address.
func DecodeAddress(m map[string]any) Address {
	return Address{
		Name:    stringField(m, "name"),
		Icon:    stringField(m, "icon"),
		Details: stringField(m, "details"),
		Others:  othersOf(m, "name", "icon", "details"),
	}
}

// ParseAddress decodes the JSON string carried in a transaction's address
// field. A string that is not valid JSON degrades to an Address whose Name
// holds the raw text.
func ParseAddress(s string) Address {
	m, err := ParseObject([]byte(s))
	if err != nil {
		return Address{Name: s}
	}
	return DecodeAddress(m)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return mergeOthers(map[string]any{
		"name":    a.Name,
		"icon":    a.Icon,
		"details": a.Details,
	}, a.Others)
}

func (a Address) String() string {
	return fmt.Sprintf("Address[%s %s %s]", a.Name, a.Icon, a.Details)
}
