package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topic and event type constants for the booking event stream.
const (
	TopicBookingEvents = "booking.events"

	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
)

// CloudEvent is the envelope every published event is wrapped in.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps a payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, err
	}
	return CloudEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingConfirmedEvent is published after a seat is committed and its
// booking receipt written.
type BookingConfirmedEvent struct {
	BookingID     uint      `json:"booking_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	BuyerID       string    `json:"buyer_id"`
	ShowtimeID    uint      `json:"showtime_id"`
	SeatNo        string    `json:"seat_no"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published after a booking is cancelled and its
// seat released.
type BookingCancelledEvent struct {
	BookingID     uint      `json:"booking_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	BuyerID       string    `json:"buyer_id"`
	ShowtimeID    uint      `json:"showtime_id"`
	SeatNo        string    `json:"seat_no"`
	OccurredAt    time.Time `json:"occurred_at"`
}
