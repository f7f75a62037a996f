package mp

import "mparcade/internal/engine"

type EventKind string

const (
	EventButton   EventKind = "button"
	EventScore    EventKind = "score"
	EventLifeZero EventKind = "life_zero"
)

// Event describes one dispatch to a registered handler. Button and
// ButtonEvent are set for EventButton, Score for EventScore.
type Event struct {
	Kind        EventKind
	Player      int
	Button      Button
	ButtonEvent engine.ButtonEvent
	Score       int
}

// Observer sees every dispatch just before the user handler runs.
type Observer interface {
	OnPlayerEvent(ev Event)
}

type ObserverFunc func(ev Event)

func (f ObserverFunc) OnPlayerEvent(ev Event) { f(ev) }
