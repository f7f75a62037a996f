package engine

import "sort"

type eventKind int

const (
	kindButton eventKind = iota
	kindScore
	kindLifeZero
)

// eventKey identifies one subscription channel inside a scene: the source
// object, what kind of event and an argument (button event or score target).
type eventKey struct {
	src  any
	kind eventKind
	arg  int
}

// RenderFunc draws onto the frame buffer. The camera is the one of the scene
// being rendered.
type RenderFunc func(target *Image, camera *Camera)

type Renderable struct {
	z         int
	draw      RenderFunc
	destroyed bool
}

func (r *Renderable) Z() int { return r.z }

func (r *Renderable) Destroy() { r.destroyed = true }

// Scene owns everything that is suspended while another scene is on top of it:
// sprites, renderables, the camera and the event subscriptions.
type Scene struct {
	ID          int
	Camera      Camera
	Background  byte
	sprites     []*Sprite
	renderables []*Renderable
	handlers    map[eventKey][]func()
}

func newScene(id int) *Scene {
	return &Scene{
		ID:       id,
		handlers: make(map[eventKey][]func()),
	}
}

func (s *Scene) on(k eventKey, fn func()) {
	s.handlers[k] = append(s.handlers[k], fn)
}

func (s *Scene) fire(k eventKey) int {
	hs := s.handlers[k]
	for _, h := range hs {
		h()
	}
	return len(hs)
}

func (s *Scene) count(k eventKey) int { return len(s.handlers[k]) }

// argsFor returns the sorted arguments of every subscription of the given kind
// on src.
func (s *Scene) argsFor(src any, kind eventKind) []int {
	var args []int
	for k := range s.handlers {
		if k.src == src && k.kind == kind {
			args = append(args, k.arg)
		}
	}
	sort.Ints(args)
	return args
}

func (s *Scene) Sprites() []*Sprite {
	alive := s.sprites[:0]
	for _, sp := range s.sprites {
		if !sp.Destroyed() {
			alive = append(alive, sp)
		}
	}
	s.sprites = alive
	return alive
}

func (s *Scene) RenderableCount() int {
	n := 0
	for _, r := range s.renderables {
		if !r.destroyed {
			n++
		}
	}
	return n
}

// SubscriptionCount reports how many handlers are registered in this scene,
// across every source and event kind.
func (s *Scene) SubscriptionCount() int {
	n := 0
	for _, hs := range s.handlers {
		n += len(hs)
	}
	return n
}
