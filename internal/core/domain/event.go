package domain

type EventKind string

const (
	CarAdded   EventKind = "carAdded"
	CarUpdated EventKind = "carUpdated"
	CarDeleted EventKind = "carDeleted"
)

// ChangeEvent is pushed to realtime subscribers after a successful
// mutation. Car is nil for deletions, which carry only the id.
type ChangeEvent struct {
	Kind  EventKind `json:"kind"`
	CarID int64     `json:"car_id"`
	Car   *Car      `json:"car,omitempty"`
}
