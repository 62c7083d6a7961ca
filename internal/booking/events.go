package booking

import "time"

// EventAction identifies which lifecycle transition produced an event.
type EventAction string

const (
	EventCreate  EventAction = "create"
	EventUpdate  EventAction = "update"
	EventCancel  EventAction = "cancel"
	EventRestore EventAction = "restore"
)

// LifecycleEvent is emitted for every transition with revenue impact and is
// folded into the cash-register ledger by the caja projection. For updates,
// PriceDelta carries the difference between the new and the previous price
// snapshot; it is zero for every other action.
type LifecycleEvent struct {
	Action      EventAction
	Reservation Reservation
	PriceDelta  int64
	OccurredAt  time.Time
}
