package model

type EventType string

const (
	EventCreated   EventType = "appointment.created"
	EventUpdated   EventType = "appointment.updated"
	EventConfirmed EventType = "appointment.confirmed"
	EventCancelled EventType = "appointment.cancelled"
	EventDeleted   EventType = "appointment.deleted"

	HeaderEventType = "event-type"
)

// EventFor names the lifecycle event of a change from prev to next.
func EventFor(prev, next Status) EventType {
	if prev != next {
		switch next {
		case StatusConfirmed:
			return EventConfirmed
		case StatusCancelled:
			return EventCancelled
		}
	}

	return EventUpdated
}
