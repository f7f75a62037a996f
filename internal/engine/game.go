// Package engine is a small headless arcade engine: a 160x120 palette frame
// buffer, sprites with fixed point hitboxes, four controllers, per player
// score and life counters and a scene stack.
//
// The engine is single threaded. Everything, including event handlers, runs
// on the goroutine that calls Update and Render.
package engine

import (
	"sort"
	"time"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 120
	MaxPlayers   = 4
)

type SceneHook func(s *Scene)

type Game struct {
	screen       *Image
	scenes       []*Scene
	nextSceneID  int
	controllers  [MaxPlayers + 1]*Controller
	infos        [MaxPlayers + 1]*PlayerInfo
	pushHandlers []SceneHook
	popHandlers  []SceneHook
	tick         uint64
}

func NewGame() *Game {
	g := &Game{screen: NewImage(ScreenWidth, ScreenHeight)}
	for p := 1; p <= MaxPlayers; p++ {
		g.controllers[p] = newController(g, p)
		g.infos[p] = &PlayerInfo{game: g, Player: p}
	}
	g.scenes = []*Scene{g.newScene()}
	return g
}

func (g *Game) newScene() *Scene {
	g.nextSceneID++
	return newScene(g.nextSceneID)
}

// Controller returns the pad of player 1..4, or nil for any other number.
func (g *Game) Controller(player int) *Controller {
	if player < 1 || player > MaxPlayers {
		return nil
	}
	return g.controllers[player]
}

// Info returns the counters of player 1..4, or nil for any other number.
func (g *Game) Info(player int) *PlayerInfo {
	if player < 1 || player > MaxPlayers {
		return nil
	}
	return g.infos[player]
}

func (g *Game) ScreenSize() (int, int) { return g.screen.Width(), g.screen.Height() }

func (g *Game) Tick() uint64 { return g.tick }

func (g *Game) CurrentScene() *Scene { return g.scenes[len(g.scenes)-1] }

func (g *Game) SceneDepth() int { return len(g.scenes) }

func (g *Game) AddScenePushHandler(h SceneHook) { g.pushHandlers = append(g.pushHandlers, h) }

func (g *Game) AddScenePopHandler(h SceneHook) { g.popHandlers = append(g.popHandlers, h) }

// PushScene suspends the current scene and starts an empty one.
func (g *Game) PushScene() *Scene {
	s := g.newScene()
	g.scenes = append(g.scenes, s)
	for _, h := range g.pushHandlers {
		h(s)
	}
	return s
}

// PopScene discards the current scene and resumes the one below. Popping the
// last scene replaces it with an empty scene so there is always a current one.
func (g *Game) PopScene() {
	old := g.CurrentScene()
	g.scenes = g.scenes[:len(g.scenes)-1]
	if len(g.scenes) == 0 {
		g.scenes = append(g.scenes, g.newScene())
	}
	for _, h := range g.popHandlers {
		h(old)
	}
}

func (g *Game) AddSprite(s *Sprite) *Sprite {
	sc := g.CurrentScene()
	sc.sprites = append(sc.sprites, s)
	return s
}

// CreateRenderable registers draw in the current scene at depth z. Sprites
// are drawn at depth 0.
func (g *Game) CreateRenderable(z int, draw RenderFunc) *Renderable {
	r := &Renderable{z: z, draw: draw}
	sc := g.CurrentScene()
	sc.renderables = append(sc.renderables, r)
	return r
}

// Update advances controllers, sprite motion and the camera by dt.
func (g *Game) Update(dt time.Duration) {
	g.tick++
	for p := 1; p <= MaxPlayers; p++ {
		g.controllers[p].update(dt)
	}
	sc := g.CurrentScene()
	secs := dt.Seconds()
	for _, s := range sc.Sprites() {
		s.move(secs)
		if s.HasFlag(FlagStayInScreen) {
			g.clampToScreen(s, &sc.Camera)
		}
	}
	sc.Camera.update(g.screen.Width(), g.screen.Height())
}

func (g *Game) clampToScreen(s *Sprite, cam *Camera) {
	x, y := s.X(), s.Y()
	minX := cam.DrawOffsetX + s.Width()/2
	maxX := cam.DrawOffsetX + g.screen.Width() - (s.Width() - s.Width()/2)
	minY := cam.DrawOffsetY + s.Height()/2
	maxY := cam.DrawOffsetY + g.screen.Height() - (s.Height() - s.Height()/2)
	x = min(max(x, minX), maxX)
	y = min(max(y, minY), maxY)
	s.SetPosition(x, y)
}

type drawable struct {
	z    int
	draw func()
}

// Render draws the current scene and returns the frame buffer. The buffer is
// reused by the next call.
func (g *Game) Render() *Image {
	sc := g.CurrentScene()
	g.screen.Fill(sc.Background)
	cam := &sc.Camera

	var list []drawable
	for _, s := range sc.Sprites() {
		if s.HasFlag(FlagInvisible) {
			continue
		}
		list = append(list, drawable{z: 0, draw: func() {
			x, y := s.Left().ToInt(), s.Top().ToInt()
			if !s.HasFlag(FlagRelativeToCamera) {
				x -= cam.DrawOffsetX
				y -= cam.DrawOffsetY
			}
			g.screen.DrawTransparentImage(s.Image(), x, y)
		}})
	}
	alive := sc.renderables[:0]
	for _, r := range sc.renderables {
		if r.destroyed {
			continue
		}
		alive = append(alive, r)
		list = append(list, drawable{z: r.z, draw: func() { r.draw(g.screen, cam) }})
	}
	sc.renderables = alive

	sort.SliceStable(list, func(i, j int) bool { return list[i].z < list[j].z })
	for _, d := range list {
		d.draw()
	}
	return g.screen
}
