package arcade

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mparcade/internal/engine"
	"mparcade/internal/mp"
)

// newQuietArena starts a two player arena with every coin and hazard parked
// away from the spawn points and standing still.
func newQuietArena(t *testing.T) (*Arena, *engine.Game, *mp.Manager) {
	t.Helper()
	g := engine.NewGame()
	m := mp.New(g)
	a := NewArena(g, m, 1, zerolog.Nop())
	a.Start(1, 2)
	for _, c := range a.coins {
		c.SetPosition(300, 230)
	}
	for _, h := range a.hazards {
		h.SetPosition(20, 230)
		h.SetVelocity(0, 0)
	}
	return a, g, m
}

func TestArenaStart(t *testing.T) {
	a, g, m := newQuietArena(t)

	for _, p := range []int{1, 2} {
		s := m.PlayerSprite(p)
		require.NotNil(t, s, "player %d", p)
		assert.Equal(t, spawnPoints[p][0], s.X())
		assert.Equal(t, spawnPoints[p][1], s.Y())
		assert.Equal(t, StartLives, m.PlayerState(p, mp.Lives))
		assert.True(t, g.Controller(p).Moving(s))
	}
	assert.Nil(t, m.PlayerSprite(3))
	assert.True(t, m.IndicatorsVisible())
	assert.Len(t, a.coins, coinCount)
	assert.Len(t, a.hazards, hazardCount)
}

func TestArenaCoinScores(t *testing.T) {
	a, _, m := newQuietArena(t)
	p1 := m.PlayerSprite(1)
	a.coins[0].SetPosition(p1.X(), p1.Y())

	a.Update(frame)

	assert.Equal(t, 1, m.PlayerState(1, mp.Score))
	assert.Equal(t, 0, m.PlayerState(2, mp.Score))
}

func TestArenaHazardCostsLife(t *testing.T) {
	a, _, m := newQuietArena(t)
	p2 := m.PlayerSprite(2)
	p2.SetPosition(200, 100)
	a.hazards[0].SetPosition(200, 100)

	a.Update(frame)

	assert.Equal(t, StartLives-1, m.PlayerState(2, mp.Lives))
	assert.Equal(t, spawnPoints[2][0], p2.X())
}

func TestArenaDash(t *testing.T) {
	a, g, m := newQuietArena(t)
	s := m.PlayerSprite(1)
	x0 := s.X()

	g.Controller(1).A.SetPressed(true)
	assert.Equal(t, x0, s.X(), "no direction held")
	g.Controller(1).A.SetPressed(false)

	g.Controller(1).Right.SetPressed(true)
	g.Controller(1).A.SetPressed(true)

	assert.Equal(t, x0+dashDistance, s.X())
	assert.Equal(t, 1, m.PlayerState(1, a.Dashes))
	assert.Equal(t, 0, m.PlayerState(2, a.Dashes))
}

func TestArenaWinAndRestart(t *testing.T) {
	a, g, m := newQuietArena(t)
	m.SetPlayerState(1, mp.Score, WinScore-1)
	p1 := m.PlayerSprite(1)
	a.coins[0].SetPosition(p1.X(), p1.Y())

	a.Update(frame)

	assert.Equal(t, 1, a.Winner())
	assert.Equal(t, 2, g.SceneDepth())
	assert.Equal(t, 2, m.Depth())
	assert.Nil(t, m.PlayerSprite(1), "results scene starts clean")

	g.Controller(2).A.SetPressed(true)

	assert.Equal(t, 0, a.Winner())
	assert.Equal(t, 1, g.SceneDepth())
	assert.Same(t, p1, m.PlayerSprite(1))
	assert.Equal(t, 0, m.PlayerState(1, mp.Score))
	assert.Equal(t, StartLives, m.PlayerState(1, mp.Lives))
}

func TestArenaLastStandingWins(t *testing.T) {
	a, g, m := newQuietArena(t)
	p2 := m.PlayerSprite(2)

	m.SetPlayerState(2, mp.Lives, 0)

	assert.True(t, p2.Destroyed())
	assert.Equal(t, 1, a.Winner())
	assert.Equal(t, 2, g.SceneDepth())

	g.Controller(1).A.SetPressed(true)
	respawned := m.PlayerSprite(2)
	require.NotNil(t, respawned)
	assert.NotSame(t, p2, respawned)
	assert.False(t, respawned.Destroyed())
}

func TestArenaPausedUnderAnotherScene(t *testing.T) {
	a, g, m := newQuietArena(t)
	p1 := m.PlayerSprite(1)
	a.coins[0].SetPosition(p1.X(), p1.Y())

	g.PushScene()
	a.Update(frame)
	assert.Equal(t, 0, m.PlayerState(1, mp.Score))

	g.PopScene()
	a.Update(frame)
	assert.Equal(t, 1, m.PlayerState(1, mp.Score))
}
