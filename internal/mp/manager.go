// Package mp adds multiplayer bookkeeping on top of the engine: which sprite
// each of the four players controls, per player counters, button, score and
// life zero events delivered with the player slot, and on screen indicators
// pointing at every player's sprite.
//
// All bookkeeping is scoped to the engine scene it was created in. Pushing a
// scene starts from a clean slate and popping it brings the previous
// bookkeeping back untouched.
package mp

import (
	"github.com/rs/zerolog"

	"mparcade/internal/engine"
)

const (
	DefaultVX = 100
	DefaultVY = 100
)

// Host is the part of the engine the module talks to. *engine.Game
// satisfies it.
type Host interface {
	Controller(player int) *engine.Controller
	Info(player int) *engine.PlayerInfo
	AddScenePushHandler(h engine.SceneHook)
	AddScenePopHandler(h engine.SceneHook)
	CreateRenderable(z int, draw engine.RenderFunc) *engine.Renderable
	ScreenSize() (int, int)
}

type Option func(*Manager)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l.With().Str("component", "mp").Logger() }
}

// WithObserver registers o to see every dispatch before the user handler.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// Manager owns the per scene state stack. It is not safe for concurrent use;
// call it from the goroutine driving the engine.
type Manager struct {
	host     Host
	log      zerolog.Logger
	observer Observer
	glyphs   *glyphCache
	stack    []*state
}

// New returns a manager bound to host. Nothing is registered with the host
// until the first operation.
func New(host Host, opts ...Option) *Manager {
	m := &Manager{
		host:   host,
		log:    zerolog.Nop(),
		glyphs: newGlyphCache(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) init() {
	if m.stack != nil {
		return
	}
	m.stack = []*state{newState(m)}
	m.host.AddScenePushHandler(func(*engine.Scene) {
		m.stack = append(m.stack, newState(m))
		m.log.Debug().Int("depth", len(m.stack)).Msg("scene pushed")
	})
	m.host.AddScenePopHandler(func(*engine.Scene) {
		m.stack = m.stack[:len(m.stack)-1]
		if len(m.stack) == 0 {
			m.stack = append(m.stack, newState(m))
		}
		m.log.Debug().Int("depth", len(m.stack)).Msg("scene popped")
	})
}

func (m *Manager) current() *state {
	m.init()
	return m.stack[len(m.stack)-1]
}

// Depth reports how many scene states are stacked, initialising the stack if
// needed.
func (m *Manager) Depth() int {
	m.init()
	return len(m.stack)
}

// AssignSprite lets player drive s with the direction buttons at the default
// speed and records s as that player's sprite.
func (m *Manager) AssignSprite(player int, s *engine.Sprite) {
	m.AssignSpriteWithSpeed(player, s, DefaultVX, DefaultVY)
}

func (m *Manager) AssignSpriteWithSpeed(player int, s *engine.Sprite, vx, vy int) {
	if !validPlayer(player) {
		return
	}
	if c := m.host.Controller(player); c != nil {
		c.MoveSprite(s, vx, vy)
	}
	m.current().setPlayerSprite(player, s)
}

// PlayerSprite returns the sprite assigned to player in the current scene,
// or nil.
func (m *Manager) PlayerSprite(player int) *engine.Sprite {
	return m.current().playerSprite(player)
}

func (m *Manager) IsPlayerSprite(s *engine.Sprite, player int) bool {
	return m.PlayerSprite(player) == s
}

// OnButtonEvent runs h with the player slot whenever any player's button
// fires ev. A later call for the same button and event replaces h.
func (m *Manager) OnButtonEvent(b Button, ev engine.ButtonEvent, h Handler) {
	m.current().onButtonEvent(b, ev, h)
}

func (m *Manager) IsButtonPressed(player int, b Button) bool {
	btn := buttonOf(m.host.Controller(player), b)
	return btn != nil && btn.IsPressed()
}

// OnScore runs h when a player's score reaches target. A later call for the
// same target replaces h.
func (m *Manager) OnScore(target int, h Handler) {
	m.current().onReachedScore(target, h)
}

// OnLifeZero runs h when a player's life counter drops to zero. There is a
// single handler for all players; a later call replaces it.
func (m *Manager) OnLifeZero(h Handler) {
	m.current().onLifeZero(h)
}

// PlayerState reads a counter. Score and Lives come from the engine; any
// other id reads 0 until it is set.
func (m *Manager) PlayerState(player int, id StateID) int {
	switch id {
	case Score:
		if info := m.host.Info(player); info != nil {
			return info.Score()
		}
		return 0
	case Lives:
		if info := m.host.Info(player); info != nil {
			return info.Life()
		}
		return 0
	}
	return m.current().playerState(player, id)
}

func (m *Manager) SetPlayerState(player int, id StateID, v int) {
	switch id {
	case Score:
		if info := m.host.Info(player); info != nil {
			info.SetScore(v)
		}
		return
	case Lives:
		if info := m.host.Info(player); info != nil {
			info.SetLife(v)
		}
		return
	}
	m.current().setPlayerState(player, id, v)
}

func (m *Manager) ChangePlayerStateBy(player int, id StateID, delta int) {
	switch id {
	case Score:
		if info := m.host.Info(player); info != nil {
			info.ChangeScoreBy(delta)
		}
		return
	case Lives:
		if info := m.host.Info(player); info != nil {
			info.ChangeLifeBy(delta)
		}
		return
	}
	m.SetPlayerState(player, id, m.PlayerState(player, id)+delta)
}

// SetIndicatorsVisible shows or hides the player indicators of the current
// scene. The renderable is created on first show and kept afterwards.
func (m *Manager) SetIndicatorsVisible(visible bool) {
	m.current().setIndicatorsVisible(visible)
}

func (m *Manager) IndicatorsVisible() bool {
	return m.current().indicatorsVisible
}
