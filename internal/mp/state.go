package mp

import (
	"github.com/rs/zerolog"

	"mparcade/internal/engine"
)

type buttonKey struct {
	button Button
	event  engine.ButtonEvent
}

// state is the multiplayer bookkeeping of one scene.
type state struct {
	host     Host
	log      zerolog.Logger
	observer Observer
	glyphs   *glyphCache

	sprites  map[int]*engine.Sprite
	buttons  *registry[buttonKey]
	scores   *registry[int]
	lifeZero *registry[struct{}]
	custom   map[StateID]*counters

	indicatorsVisible bool
	indicator         *engine.Renderable
}

func newState(m *Manager) *state {
	return &state{
		host:     m.host,
		log:      m.log,
		observer: m.observer,
		glyphs:   m.glyphs,
		sprites:  make(map[int]*engine.Sprite),
		buttons:  newRegistry[buttonKey](),
		scores:   newRegistry[int](),
		lifeZero: newRegistry[struct{}](),
		custom:   make(map[StateID]*counters),
	}
}

func (s *state) notify(ev Event) {
	if s.observer != nil {
		s.observer.OnPlayerEvent(ev)
	}
}

func (s *state) onButtonEvent(b Button, ev engine.ButtonEvent, h Handler) {
	k := buttonKey{button: b, event: ev}
	if !s.buttons.set(k, h) {
		return
	}
	for p := One; p <= Four; p++ {
		btn := buttonOf(s.host.Controller(p), b)
		if btn == nil {
			continue
		}
		player := p
		btn.OnEvent(ev, func() {
			s.notify(Event{Kind: EventButton, Player: player, Button: b, ButtonEvent: ev})
			s.buttons.dispatch(k, player)
		})
	}
	s.log.Debug().Stringer("button", b).Stringer("event", ev).Msg("button event wired")
}

func (s *state) onReachedScore(target int, h Handler) {
	if !s.scores.set(target, h) {
		return
	}
	for p := One; p <= Four; p++ {
		info := s.host.Info(p)
		if info == nil {
			continue
		}
		player := p
		info.OnScore(target, func() {
			s.notify(Event{Kind: EventScore, Player: player, Score: target})
			s.scores.dispatch(target, player)
		})
	}
	s.log.Debug().Int("target", target).Msg("score event wired")
}

func (s *state) onLifeZero(h Handler) {
	if !s.lifeZero.set(struct{}{}, h) {
		return
	}
	for p := One; p <= Four; p++ {
		info := s.host.Info(p)
		if info == nil {
			continue
		}
		player := p
		info.OnLifeZero(func() {
			s.notify(Event{Kind: EventLifeZero, Player: player})
			s.lifeZero.dispatch(struct{}{}, player)
		})
	}
	s.log.Debug().Msg("life zero event wired")
}

func (s *state) setPlayerSprite(player int, sp *engine.Sprite) {
	if !validPlayer(player) {
		return
	}
	if sp == nil {
		delete(s.sprites, player)
		return
	}
	s.sprites[player] = sp
}

func (s *state) playerSprite(player int) *engine.Sprite {
	return s.sprites[player]
}

func (s *state) entry(id StateID) *counters {
	c, ok := s.custom[id]
	if !ok {
		c = new(counters)
		s.custom[id] = c
	}
	return c
}

func (s *state) setPlayerState(player int, id StateID, v int) {
	if !validPlayer(player) {
		return
	}
	s.entry(id)[player] = v
}

func (s *state) playerState(player int, id StateID) int {
	if !validPlayer(player) {
		return 0
	}
	return s.entry(id)[player]
}

func (s *state) setIndicatorsVisible(visible bool) {
	s.indicatorsVisible = visible
	if visible && s.indicator == nil {
		s.indicator = s.host.CreateRenderable(indicatorZ, func(target *engine.Image, cam *engine.Camera) {
			if s.indicatorsVisible {
				s.drawIndicators(target, cam)
			}
		})
	}
}
