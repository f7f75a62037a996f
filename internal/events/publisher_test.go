package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mparcade/internal/engine"
	"mparcade/internal/mp"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs []published
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{subject: subject, data: data})
	return nil
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "arcade.player.3.score", Subject("arcade", mp.Event{Kind: mp.EventScore, Player: 3}))
	assert.Equal(t, "x.player.1.life_zero", Subject("x", mp.Event{Kind: mp.EventLifeZero, Player: 1}))
}

func TestPublishesButtonRecord(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, "arcade", zerolog.Nop())
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return at }

	p.OnPlayerEvent(mp.Event{Kind: mp.EventButton, Player: 2, Button: mp.B, ButtonEvent: engine.Released})

	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "arcade.player.2.button", conn.msgs[0].subject)
	var got Record
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &got))
	assert.Equal(t, Record{Player: 2, Kind: mp.EventButton, Button: "B", Event: "released", At: at}, got)
}

func TestScoreRecordOmitsButton(t *testing.T) {
	r := NewRecord(mp.Event{Kind: mp.EventScore, Player: 4, Score: 50}, time.Unix(0, 0))
	assert.Equal(t, 50, r.Score)
	assert.Empty(t, r.Button)
	assert.Empty(t, r.Event)
}

func TestPublishErrorIsSwallowed(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := NewPublisher(conn, "arcade", zerolog.Nop())

	assert.NotPanics(t, func() { p.OnPlayerEvent(mp.Event{Kind: mp.EventLifeZero, Player: 1}) })
}

func TestPublisherAsObserver(t *testing.T) {
	conn := &fakeConn{}
	g := engine.NewGame()
	m := mp.New(g, mp.WithObserver(NewPublisher(conn, "arcade", zerolog.Nop())))

	m.OnScore(5, nil)
	m.SetPlayerState(mp.One, mp.Score, 5)

	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "arcade.player.1.score", conn.msgs[0].subject)
}
