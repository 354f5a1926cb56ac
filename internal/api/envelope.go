package api

import (
	"encoding/json"
	"strconv"

	"moneylover/internal/core"
)

// The service reports the rejected access token either as numeric code 717
// or as this message, depending on which envelope dialect the endpoint
// speaks.
const (
	sessionExpiredCode = 717
	sessionExpiredMsg  = "token_device_not_found"
)

// envelope covers both response dialects the service uses:
//
//	{error: <int>, msg: <string>, data: ...}
//	{e: <string>, message: <string>, data: ...}
//
// Error is a pointer so an absent field is told apart from an explicit 0.
type envelope struct {
	Error   *int            `json:"error"`
	Msg     string          `json:"msg"`
	E       string          `json:"e"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope interprets a raw response body, checking the numeric
// dialect first and the string dialect second, and returns the data field
// on success. Downstream code never re-checks envelope shape.
func decodeEnvelope(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &core.DecodeError{Entity: "envelope", Reason: err.Error()}
	}

	if env.Error != nil && *env.Error != 0 {
		if *env.Error == sessionExpiredCode || env.Msg == sessionExpiredMsg {
			return nil, ErrSessionExpired
		}
		return nil, &APIError{Code: strconv.Itoa(*env.Error), Message: env.Msg}
	}
	if env.E != "" {
		if env.E == sessionExpiredMsg || env.Message == sessionExpiredMsg {
			return nil, ErrSessionExpired
		}
		return nil, &APIError{Code: env.E, Message: env.Message}
	}

	return env.Data, nil
}
