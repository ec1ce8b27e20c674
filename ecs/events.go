package ecs

// GroundingEventKind identifies grounding transitions.
type GroundingEventKind string

const (
	GroundingLanded  GroundingEventKind = "landed"
	GroundingLeft    GroundingEventKind = "left_ground"
	GroundingJumped  GroundingEventKind = "jumped"
	GroundingBlocked GroundingEventKind = "jump_failed"
)

// GroundingEvent is emitted by the controller system when an entity's
// grounded state changes or a jump is launched.
type GroundingEvent struct {
	Entity Entity
	Kind   GroundingEventKind
}

// EventQueue is a FIFO of events raised during one tick. Systems that run
// later in the same tick can read them; the scheduler clears it afterwards.
type EventQueue struct {
	items []GroundingEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt GroundingEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []GroundingEvent {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []GroundingEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
