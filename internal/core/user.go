package core

import "fmt"

// UserInfo describes the logged in user.
type UserInfo struct {
	ID          string
	DeviceID    string
	Email       string
	IconPackage []string
	Purchased   bool
	Others      map[string]any
}

// DecodeUserInfo maps a raw user payload onto a UserInfo. Missing fields
// take their zero defaults; it never fails.
func DecodeUserInfo(m map[string]any) UserInfo {
	return UserInfo{
		ID:          stringField(m, "_id"),
		DeviceID:    stringField(m, "deviceId"),
		Email:       stringField(m, "email"),
		IconPackage: stringsField(m, "icon_package"),
		Purchased:   boolField(m, "purchased"),
		Others:      othersOf(m, "_id", "deviceId", "email", "icon_package", "purchased"),
	}
}

func (u UserInfo) MarshalJSON() ([]byte, error) {
	return mergeOthers(map[string]any{
		"_id":          u.ID,
		"deviceId":     u.DeviceID,
		"email":        u.Email,
		"icon_package": u.IconPackage,
		"purchased":    u.Purchased,
	}, u.Others)
}

func (u UserInfo) String() string {
	return fmt.Sprintf("UserInfo[%s %s @ %s]", u.ID, u.Email, u.DeviceID)
}
