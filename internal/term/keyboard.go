package term

import (
	"sync"

	"github.com/nsf/termbox-go"

	"mparcade/internal/mp"
	"mparcade/internal/network"
)

// DefaultHoldFrames is how long a key counts as held after its last press.
// Terminals report no key release, so the auto repeat of a held key keeps
// refreshing it.
const DefaultHoldFrames = 6

type binding struct {
	player int
	button mp.Button
}

type bindingKey struct {
	ch  rune
	key termbox.Key
}

// Player 1 plays on WASD with F and G, player 2 on the arrows with K and L.
var bindings = map[bindingKey]binding{
	{ch: 'w'}: {1, mp.Up},
	{ch: 'a'}: {1, mp.Left},
	{ch: 's'}: {1, mp.Down},
	{ch: 'd'}: {1, mp.Right},
	{ch: 'f'}: {1, mp.A},
	{ch: 'g'}: {1, mp.B},

	{key: termbox.KeyArrowUp}:    {2, mp.Up},
	{key: termbox.KeyArrowLeft}:  {2, mp.Left},
	{key: termbox.KeyArrowDown}:  {2, mp.Down},
	{key: termbox.KeyArrowRight}: {2, mp.Right},
	{ch: 'k'}:                    {2, mp.A},
	{ch: 'l'}:                    {2, mp.B},
}

// Lookup resolves a key event to a player button.
func Lookup(ev termbox.Event) (player int, button mp.Button, ok bool) {
	k := bindingKey{key: ev.Key}
	if ev.Ch != 0 {
		k = bindingKey{ch: ev.Ch | 0x20}
	}
	b, ok := bindings[k]
	return b.player, b.button, ok
}

// Keyboard turns key presses into press and release input events.
type Keyboard struct {
	mu   sync.Mutex
	held map[binding]int
	hold int
	sink network.InputSink
}

func NewKeyboard(sink network.InputSink, holdFrames int) *Keyboard {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Keyboard{held: make(map[binding]int), hold: holdFrames, sink: sink}
}

// Press records a key press, emitting a pressed event if the button was up.
func (k *Keyboard) Press(player int, button mp.Button) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b := binding{player, button}
	if _, down := k.held[b]; !down {
		k.sink(network.InputEvent{Player: player, Button: button, Pressed: true})
	}
	k.held[b] = k.hold
}

// Tick ages held keys by one frame and releases the expired ones.
func (k *Keyboard) Tick() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for b, left := range k.held {
		if left <= 1 {
			delete(k.held, b)
			k.sink(network.InputEvent{Player: b.player, Button: b.button, Pressed: false})
			continue
		}
		k.held[b] = left - 1
	}
}
