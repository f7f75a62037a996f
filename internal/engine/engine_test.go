package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFxToIntFloors(t *testing.T) {
	assert.Equal(t, 3, FxFromInt(3).ToInt())
	assert.Equal(t, -3, FxFromInt(-3).ToInt())
	assert.Equal(t, 2, FxFromFloat(2.75).ToInt())
	assert.Equal(t, -3, FxFromFloat(-2.5).ToInt())
}

func TestDrawTransparentImageClipsAndSkipsZero(t *testing.T) {
	dst := NewImage(4, 4)
	dst.Fill(9)
	src := ImageFromRows(
		"1.",
		"23",
	)

	dst.DrawTransparentImage(src, 3, 3)
	assert.Equal(t, byte(1), dst.Pixel(3, 3))

	dst.DrawTransparentImage(src, -1, 0)
	assert.Equal(t, byte(9), dst.Pixel(0, 0))
	assert.Equal(t, byte(3), dst.Pixel(0, 1))

	assert.Equal(t, byte(0), dst.Pixel(10, 10))
	require.NotPanics(t, func() { dst.DrawTransparentImage(nil, 0, 0) })
}

func TestSpriteHitbox(t *testing.T) {
	s := NewSprite(NewImage(16, 8), 0)
	s.SetPosition(20, 30)

	hb := s.Hitbox()
	assert.Equal(t, 12, hb.Left.ToInt())
	assert.Equal(t, 26, hb.Top.ToInt())
	assert.Equal(t, 27, hb.Right.ToInt())
	assert.Equal(t, 33, hb.Bottom.ToInt())
	assert.NotEmpty(t, s.ID)
}

func TestButtonEventsAreSceneScoped(t *testing.T) {
	g := NewGame()
	a := g.Controller(1).A
	var outer, inner int

	a.OnEvent(Pressed, func() { outer++ })
	a.SetPressed(true)
	a.SetPressed(true)
	assert.Equal(t, 1, outer)

	g.PushScene()
	a.OnEvent(Pressed, func() { inner++ })
	a.SetPressed(false)
	a.SetPressed(true)
	assert.Equal(t, 1, outer)
	assert.Equal(t, 1, inner)

	g.PopScene()
	a.SetPressed(false)
	a.SetPressed(true)
	assert.Equal(t, 2, outer)
	assert.Equal(t, 1, inner)
}

func TestButtonRepeats(t *testing.T) {
	g := NewGame()
	b := g.Controller(2).B
	n := 0
	b.OnEvent(Repeated, func() { n++ })

	b.SetPressed(true)
	g.Update(400 * time.Millisecond)
	assert.Zero(t, n)
	g.Update(100 * time.Millisecond)
	assert.Equal(t, 1, n)
	g.Update(60 * time.Millisecond)
	assert.Equal(t, 3, n)
}

func TestScoreCrossingFiresOnce(t *testing.T) {
	g := NewGame()
	info := g.Info(1)
	hits := 0
	info.OnScore(10, func() { hits++ })

	info.SetScore(9)
	assert.Zero(t, hits)
	info.ChangeScoreBy(5)
	assert.Equal(t, 1, hits)
	info.SetScore(20)
	assert.Equal(t, 1, hits)
	info.SetScore(0)
	info.SetScore(10)
	assert.Equal(t, 2, hits)
}

func TestLifeZeroFiresOnTransition(t *testing.T) {
	g := NewGame()
	info := g.Info(3)
	hits := 0
	info.OnLifeZero(func() { hits++ })

	info.SetLife(0)
	assert.Zero(t, hits)
	info.SetLife(2)
	info.ChangeLifeBy(-2)
	assert.Equal(t, 1, hits)
	info.ChangeLifeBy(-1)
	assert.Equal(t, 1, hits)
	assert.Equal(t, -1, info.Life())
}

func TestSceneHooks(t *testing.T) {
	g := NewGame()
	var pushed, popped []int
	g.AddScenePushHandler(func(s *Scene) { pushed = append(pushed, s.ID) })
	g.AddScenePopHandler(func(s *Scene) { popped = append(popped, s.ID) })

	first := g.CurrentScene().ID
	second := g.PushScene().ID
	g.PopScene()
	g.PopScene()

	assert.Equal(t, []int{second}, pushed)
	assert.Equal(t, []int{second, first}, popped)
	assert.Equal(t, 1, g.SceneDepth())
	assert.NotEqual(t, first, g.CurrentScene().ID)
}

func TestControllerOutOfRange(t *testing.T) {
	g := NewGame()
	assert.Nil(t, g.Controller(0))
	assert.Nil(t, g.Controller(5))
	assert.Nil(t, g.Info(0))
	assert.NotNil(t, g.Info(4))
}

func TestRenderOrdersByDepthAndCamera(t *testing.T) {
	g := NewGame()
	img := NewImage(2, 2)
	img.Fill(5)
	s := g.AddSprite(NewSprite(img, 0))
	s.SetPosition(11, 11)
	g.CurrentScene().Camera.DrawOffsetX = 5

	g.CreateRenderable(-1, func(target *Image, _ *Camera) { target.FillRect(0, 0, 20, 20, 3) })
	top := g.CreateRenderable(10, func(target *Image, _ *Camera) { target.SetPixel(6, 10, 7) })

	frame := g.Render()
	assert.Equal(t, byte(5), frame.Pixel(5, 10))
	assert.Equal(t, byte(7), frame.Pixel(6, 10))
	assert.Equal(t, byte(3), frame.Pixel(0, 0))

	top.Destroy()
	frame = g.Render()
	assert.Equal(t, byte(5), frame.Pixel(6, 10))
	assert.Equal(t, 1, g.CurrentScene().RenderableCount())
}

func TestStayInScreen(t *testing.T) {
	g := NewGame()
	s := g.AddSprite(NewSprite(NewImage(4, 4), 0))
	s.SetFlag(FlagStayInScreen, true)
	s.SetPosition(2, 2)
	s.SetVelocity(-100, 0)

	g.Update(time.Second)
	assert.Equal(t, 2, s.X())
}
