package arcade

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"mparcade/internal/engine"
	"mparcade/internal/mp"
)

const (
	WorldWidth  = 320
	WorldHeight = 240
	WinScore    = 10
	StartLives  = 3

	dashDistance = 16
	coinCount    = 6
	hazardCount  = 3
	hazardSpeed  = 40
	hudZ         = 50
)

const (
	kindPlayer = iota + 1
	kindCoin
	kindHazard
)

var spawnPoints = [5][2]int{{}, {80, 80}, {240, 80}, {80, 180}, {240, 180}}

// Arena is the demo game: players collect coins for score, dodge hazards that
// cost a life and dash with A. The first to WinScore, or the last one
// standing, wins.
type Arena struct {
	game    *engine.Game
	players *mp.Manager
	rng     *rand.Rand
	log     zerolog.Logger

	// Dashes counts how often each player dashed in the current round.
	Dashes mp.StateID

	scene        *engine.Scene
	participants []int
	coins        []*engine.Sprite
	hazards      []*engine.Sprite
	winner       int
}

func NewArena(game *engine.Game, players *mp.Manager, seed uint64, log zerolog.Logger) *Arena {
	return &Arena{
		game:    game,
		players: players,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:     log.With().Str("component", "arena").Logger(),
		Dashes:  mp.NewStateKind(),
	}
}

// Winner is the slot that won the last round, or 0 while a round is running.
func (a *Arena) Winner() int { return a.winner }

// Start builds the arena in the current scene for the given player slots.
func (a *Arena) Start(participants ...int) {
	if len(participants) == 0 {
		participants = mp.AllPlayers()
	}
	a.participants = participants
	a.scene = a.game.CurrentScene()
	a.scene.Background = 13

	for _, p := range participants {
		a.spawn(p)
	}
	if s := a.players.PlayerSprite(participants[0]); s != nil {
		a.scene.Camera.Follow(s)
	}

	for range coinCount {
		c := a.game.AddSprite(engine.NewSprite(coinImage, kindCoin))
		a.relocate(c)
		a.coins = append(a.coins, c)
	}
	for range hazardCount {
		h := a.game.AddSprite(engine.NewSprite(hazardImage, kindHazard))
		a.relocate(h)
		h.SetVelocity(a.randomSign()*hazardSpeed, a.randomSign()*hazardSpeed)
		a.hazards = append(a.hazards, h)
	}

	a.game.CreateRenderable(hudZ, a.drawHUD)
	a.players.SetIndicatorsVisible(true)

	a.players.OnButtonEvent(mp.A, engine.Pressed, a.dash)
	a.players.OnButtonEvent(mp.B, engine.Pressed, func(int) {
		a.players.SetIndicatorsVisible(!a.players.IndicatorsVisible())
	})
	a.players.OnScore(WinScore, a.win)
	a.players.OnLifeZero(a.eliminate)

	a.log.Info().Ints("players", participants).Msg("arena started")
}

func (a *Arena) spawn(p int) {
	s := a.players.PlayerSprite(p)
	if s == nil || s.Destroyed() {
		s = a.game.AddSprite(engine.NewSprite(playerImage(p), kindPlayer))
		a.players.AssignSprite(p, s)
	}
	s.SetPosition(spawnPoints[p][0], spawnPoints[p][1])
	a.players.SetPlayerState(p, mp.Score, 0)
	a.players.SetPlayerState(p, mp.Lives, StartLives)
	a.players.SetPlayerState(p, a.Dashes, 0)
}

// Update moves hazards and resolves pickups and hits. It does nothing while
// another scene is on top of the arena.
func (a *Arena) Update(time.Duration) {
	if !a.active() {
		return
	}
	for _, h := range a.hazards {
		a.bounce(h)
	}
	for _, p := range a.participants {
		s := a.players.PlayerSprite(p)
		if s == nil || s.Destroyed() {
			continue
		}
		clampToWorld(s)
		for _, c := range a.coins {
			if overlaps(s.Hitbox(), c.Hitbox()) {
				a.relocate(c)
				a.players.ChangePlayerStateBy(p, mp.Score, 1)
				if !a.active() {
					return
				}
			}
		}
		for _, h := range a.hazards {
			if overlaps(s.Hitbox(), h.Hitbox()) {
				s.SetPosition(spawnPoints[p][0], spawnPoints[p][1])
				a.players.ChangePlayerStateBy(p, mp.Lives, -1)
				if !a.active() {
					return
				}
				break
			}
		}
	}
}

func (a *Arena) active() bool {
	return a.scene != nil && a.game.CurrentScene() == a.scene
}

func (a *Arena) dash(p int) {
	s := a.players.PlayerSprite(p)
	if s == nil || s.Destroyed() {
		return
	}
	dx, dy := 0, 0
	if a.players.IsButtonPressed(p, mp.Left) {
		dx--
	}
	if a.players.IsButtonPressed(p, mp.Right) {
		dx++
	}
	if a.players.IsButtonPressed(p, mp.Up) {
		dy--
	}
	if a.players.IsButtonPressed(p, mp.Down) {
		dy++
	}
	if dx == 0 && dy == 0 {
		return
	}
	s.SetPosition(s.X()+dx*dashDistance, s.Y()+dy*dashDistance)
	clampToWorld(s)
	a.players.ChangePlayerStateBy(p, a.Dashes, 1)
}

func (a *Arena) eliminate(p int) {
	if s := a.players.PlayerSprite(p); s != nil {
		s.Destroy()
	}
	a.log.Info().Int("player", p).Msg("player eliminated")

	if len(a.participants) < 2 {
		return
	}
	last := 0
	for _, q := range a.participants {
		if s := a.players.PlayerSprite(q); s != nil && !s.Destroyed() {
			if last != 0 {
				return
			}
			last = q
		}
	}
	if last != 0 {
		a.win(last)
	}
}

func (a *Arena) win(p int) {
	if a.winner != 0 {
		return
	}
	a.winner = p
	a.log.Info().Int("player", p).Msg("round won")

	results := a.game.PushScene()
	results.Background = 15
	a.game.CreateRenderable(0, a.drawResults)
	a.players.OnButtonEvent(mp.A, engine.Pressed, func(int) { a.restart() })
}

func (a *Arena) restart() {
	a.game.PopScene()
	a.winner = 0
	for _, p := range a.participants {
		a.spawn(p)
	}
	if s := a.players.PlayerSprite(a.participants[0]); s != nil {
		a.scene.Camera.Follow(s)
	}
	a.log.Info().Msg("round restarted")
}

func (a *Arena) relocate(s *engine.Sprite) {
	s.SetPosition(8+a.rng.IntN(WorldWidth-16), 8+a.rng.IntN(WorldHeight-16))
}

func (a *Arena) randomSign() int {
	if a.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

func (a *Arena) bounce(h *engine.Sprite) {
	hb := h.Hitbox()
	if (hb.Left.ToInt() <= 0 && h.VX < 0) || (hb.Right.ToInt() >= WorldWidth-1 && h.VX > 0) {
		h.VX = -h.VX
	}
	if (hb.Top.ToInt() <= 0 && h.VY < 0) || (hb.Bottom.ToInt() >= WorldHeight-1 && h.VY > 0) {
		h.VY = -h.VY
	}
}

func clampToWorld(s *engine.Sprite) {
	hw, hh := s.Width()/2, s.Height()/2
	x := min(max(s.X(), hw), WorldWidth-(s.Width()-hw))
	y := min(max(s.Y(), hh), WorldHeight-(s.Height()-hh))
	if x != s.X() || y != s.Y() {
		s.SetPosition(x, y)
	}
}

func overlaps(a, b engine.Hitbox) bool {
	return a.Left <= b.Right && b.Left <= a.Right && a.Top <= b.Bottom && b.Top <= a.Bottom
}
