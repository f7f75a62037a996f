package mp

import "mparcade/internal/engine"

// Player slots. Anything outside One..Four is ignored by setters and reads
// back as absent.
const (
	One   = 1
	Two   = 2
	Three = 3
	Four  = 4
)

const maxPlayers = engine.MaxPlayers

// Handler receives the slot of the player that triggered the event.
type Handler func(player int)

func validPlayer(p int) bool { return p >= One && p <= Four }

// IsPlayer reports whether v names player p.
func IsPlayer(v, p int) bool { return v == p }

// AllPlayers returns a fresh slice with every player slot.
func AllPlayers() []int { return []int{One, Two, Three, Four} }
