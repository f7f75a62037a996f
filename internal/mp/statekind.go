package mp

import "sync/atomic"

// StateID names a per player counter.
type StateID int

// Score and Lives are served by the engine's built-in counters and never
// stored in the custom table.
const (
	Score StateID = -1
	Lives StateID = -2
)

var nextStateKind atomic.Int32

// NewStateKind hands out a fresh custom state id. Ids start at 0 and never
// collide with Score or Lives.
func NewStateKind() StateID {
	return StateID(nextStateKind.Add(1) - 1)
}

func (id StateID) String() string {
	switch id {
	case Score:
		return "score"
	case Lives:
		return "lives"
	}
	return "state"
}

// counters holds one value per player, indexed by slot.
type counters [maxPlayers + 1]int
