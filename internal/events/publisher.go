// Package events mirrors multiplayer dispatches onto NATS so that external
// services such as leaderboards can follow a match.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"mparcade/internal/mp"
)

// Record is the JSON body published for each dispatch.
type Record struct {
	Player int          `json:"player"`
	Kind   mp.EventKind `json:"kind"`
	Button string       `json:"button,omitempty"`
	Event  string       `json:"event,omitempty"`
	Score  int          `json:"score,omitempty"`
	At     time.Time    `json:"at"`
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher implements mp.Observer.
type Publisher struct {
	conn   Conn
	prefix string
	log    zerolog.Logger
	now    func() time.Time
}

func NewPublisher(conn Conn, prefix string, log zerolog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		prefix: prefix,
		log:    log.With().Str("component", "events").Logger(),
		now:    time.Now,
	}
}

// Connect dials the NATS server at url and returns the connection, retrying
// in the background if the server goes away later.
func Connect(url, name string, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	return nc, nil
}

// Subject builds "<prefix>.player.<n>.<kind>".
func Subject(prefix string, ev mp.Event) string {
	return fmt.Sprintf("%s.player.%d.%s", prefix, ev.Player, ev.Kind)
}

func NewRecord(ev mp.Event, at time.Time) Record {
	r := Record{Player: ev.Player, Kind: ev.Kind, At: at.UTC()}
	switch ev.Kind {
	case mp.EventButton:
		r.Button = ev.Button.String()
		r.Event = ev.ButtonEvent.String()
	case mp.EventScore:
		r.Score = ev.Score
	}
	return r
}

func (p *Publisher) OnPlayerEvent(ev mp.Event) {
	data, err := json.Marshal(NewRecord(ev, p.now()))
	if err != nil {
		p.log.Error().Err(err).Msg("encoding event")
		return
	}
	subject := Subject(p.prefix, ev)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).Str("subject", subject).Msg("publish failed")
	}
}
