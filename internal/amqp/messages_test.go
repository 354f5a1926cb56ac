package amqp

import (
	"testing"
	"time"
)

func TestEntityUpdateMessageRoundTrip(t *testing.T) {
	msg := NewEntityUpdateMessage(KindWallet, "w1", "run-1")
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	raw, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := EntityUpdateMessageFromJSON(raw)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Kind != KindWallet || got.ID != "w1" || got.RunID != "run-1" {
		t.Errorf("unexpected message %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestEntityUpdateMessageFromJSONInvalid(t *testing.T) {
	if _, err := EntityUpdateMessageFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
