//START OF FILE mparcade/internal/network/lobby.go
package network

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"mparcade/internal/mp"
)

var ErrLobbyFull = errors.New("all player slots are taken")

// InputEvent é uma mudança de botão vinda de um controle remoto.
type InputEvent struct {
	Player  int
	Button  mp.Button
	Pressed bool
}

// InputSink recebe a entrada remota. Devolve false se o evento não coube na fila.
type InputSink func(ev InputEvent) bool

// Lobby distribui os quatro slots de jogador entre os clientes remotos e
// transforma as mensagens BUTTON em InputEvents. Implementa EventHandler e só é
// acessado pela goroutine do Hub.
type Lobby struct {
	slots [5]*Client
	down  map[*Client]map[mp.Button]bool
	sink  InputSink
	log   zerolog.Logger
}

func NewLobby(sink InputSink, log zerolog.Logger) *Lobby {
	return &Lobby{
		down: make(map[*Client]map[mp.Button]bool),
		sink: sink,
		log:  log.With().Str("component", "lobby").Logger(),
	}
}

// Occupied lista os slots ocupados.
func (l *Lobby) Occupied() []int {
	var out []int
	for _, p := range mp.AllPlayers() {
		if l.slots[p] != nil {
			out = append(out, p)
		}
	}
	return out
}

func (l *Lobby) OnConnect(c *Client) {
	l.log.Info().Str("client", c.ID).Msg("client connected")
}

func (l *Lobby) OnDisconnect(c *Client) {
	if c.Player != 0 && l.slots[c.Player] == c {
		for b := range l.down[c] {
			l.emit(InputEvent{Player: c.Player, Button: b, Pressed: false})
		}
		l.slots[c.Player] = nil
		l.log.Info().Str("client", c.ID).Int("player", c.Player).Msg("slot released")
	}
	delete(l.down, c)
}

func (l *Lobby) OnMessage(c *Client, msg Message) {
	var err error
	switch msg.Type {
	case MsgJoin:
		err = l.join(c, msg)
	case MsgButton:
		err = l.button(c, msg)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		l.log.Debug().Err(err).Str("client", c.ID).Msg("rejected message")
		c.trySend(errorMessage(err.Error()))
	}
}

func (l *Lobby) claim(want int) (int, error) {
	if want != 0 {
		if want < mp.One || want > mp.Four {
			return 0, fmt.Errorf("player %d does not exist", want)
		}
		if l.slots[want] != nil {
			return 0, fmt.Errorf("player %d is taken", want)
		}
		return want, nil
	}
	for _, p := range mp.AllPlayers() {
		if l.slots[p] == nil {
			return p, nil
		}
	}
	return 0, ErrLobbyFull
}

func (l *Lobby) join(c *Client, msg Message) error {
	if c.Player != 0 {
		return fmt.Errorf("already joined as player %d", c.Player)
	}
	// JOIN sem payload equivale a pedir o primeiro slot livre.
	var req JoinPayload
	if len(msg.Payload) > 0 {
		var err error
		if req, err = DecodePayload[JoinPayload](msg); err != nil {
			return err
		}
	}
	p, err := l.claim(req.Player)
	if err != nil {
		return err
	}
	l.slots[p] = c
	c.Player = p
	l.down[c] = make(map[mp.Button]bool)

	welcome, err := NewMessage(MsgWelcome, WelcomePayload{ClientID: c.ID, Player: p})
	if err != nil {
		return err
	}
	c.trySend(welcome)
	l.log.Info().Str("client", c.ID).Int("player", p).Msg("player joined")
	return nil
}

func (l *Lobby) button(c *Client, msg Message) error {
	if c.Player == 0 {
		return errors.New("join before sending input")
	}
	req, err := DecodePayload[ButtonPayload](msg)
	if err != nil {
		return err
	}
	b, err := mp.ParseButton(req.Button)
	if err != nil {
		return err
	}
	if req.Pressed {
		l.down[c][b] = true
	} else {
		delete(l.down[c], b)
	}
	l.emit(InputEvent{Player: c.Player, Button: b, Pressed: req.Pressed})
	return nil
}

func (l *Lobby) emit(ev InputEvent) {
	if l.sink == nil {
		return
	}
	if !l.sink(ev) {
		l.log.Warn().Int("player", ev.Player).Stringer("button", ev.Button).Msg("input queue full, event discarded")
	}
}

//END OF FILE mparcade/internal/network/lobby.go
