// Package arcade drives the engine: it owns the frame loop, the input queue
// fed by the network and terminal front ends, and the demo arena game.
package arcade

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mparcade/internal/engine"
	"mparcade/internal/mp"
	"mparcade/internal/network"
)

const inputQueueSize = 256

// Loop runs the engine on a single goroutine. Input from other goroutines
// reaches it only through the queue returned by Sink.
type Loop struct {
	game     *engine.Game
	players  *mp.Manager
	inputs   chan network.InputEvent
	interval time.Duration
	log      zerolog.Logger

	update     func(dt time.Duration)
	onFrame    func(frame *engine.Image)
	onState    func(state network.StatePayload)
	stateEvery uint64
	onTick     func()
	frames     uint64
}

type LoopOption func(*Loop)

// WithUpdate runs fn every frame before the engine advances.
func WithUpdate(fn func(dt time.Duration)) LoopOption {
	return func(l *Loop) { l.update = fn }
}

// WithFrameHandler receives every rendered frame. The image is reused by the
// next frame.
func WithFrameHandler(fn func(frame *engine.Image)) LoopOption {
	return func(l *Loop) { l.onFrame = fn }
}

// WithStateHandler receives a snapshot every n frames.
func WithStateHandler(n int, fn func(state network.StatePayload)) LoopOption {
	return func(l *Loop) {
		l.stateEvery = uint64(max(n, 1))
		l.onState = fn
	}
}

func WithTickHook(fn func()) LoopOption {
	return func(l *Loop) { l.onTick = fn }
}

func WithLoopLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) { l.log = log.With().Str("component", "loop").Logger() }
}

func NewLoop(game *engine.Game, players *mp.Manager, interval time.Duration, opts ...LoopOption) *Loop {
	l := &Loop{
		game:     game,
		players:  players,
		inputs:   make(chan network.InputEvent, inputQueueSize),
		interval: interval,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Sink queues input without blocking. It is safe for concurrent use.
func (l *Loop) Sink() network.InputSink {
	return func(ev network.InputEvent) bool {
		select {
		case l.inputs <- ev:
			return true
		default:
			return false
		}
	}
}

// Run steps the loop at its interval until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	l.log.Info().Dur("interval", l.interval).Msg("loop started")

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.log.Info().Uint64("frames", l.frames).Msg("loop stopped")
			return
		case now := <-ticker.C:
			l.Step(now.Sub(last))
			last = now
		}
	}
}

// Step applies queued input and advances one frame by dt.
func (l *Loop) Step(dt time.Duration) {
	l.drain()
	if l.update != nil {
		l.update(dt)
	}
	l.game.Update(dt)
	frame := l.game.Render()
	l.frames++

	if l.onFrame != nil {
		l.onFrame(frame)
	}
	if l.onState != nil && l.frames%l.stateEvery == 0 {
		l.onState(l.Snapshot())
	}
	if l.onTick != nil {
		l.onTick()
	}
}

func (l *Loop) drain() {
	for {
		select {
		case ev := <-l.inputs:
			l.apply(ev)
		default:
			return
		}
	}
}

func (l *Loop) apply(ev network.InputEvent) {
	c := l.game.Controller(ev.Player)
	if c == nil {
		return
	}
	var b *engine.Button
	switch ev.Button {
	case mp.A:
		b = c.A
	case mp.B:
		b = c.B
	case mp.Up:
		b = c.Up
	case mp.Right:
		b = c.Right
	case mp.Down:
		b = c.Down
	case mp.Left:
		b = c.Left
	default:
		return
	}
	b.SetPressed(ev.Pressed)
}

// Snapshot reports score, life and sprite assignment of every player.
func (l *Loop) Snapshot() network.StatePayload {
	st := network.StatePayload{Tick: l.game.Tick()}
	for _, p := range mp.AllPlayers() {
		s := l.players.PlayerSprite(p)
		st.Players = append(st.Players, network.PlayerSnapshot{
			Player:   p,
			Score:    l.players.PlayerState(p, mp.Score),
			Life:     l.players.PlayerState(p, mp.Lives),
			Assigned: s != nil && !s.Destroyed(),
		})
	}
	return st
}
