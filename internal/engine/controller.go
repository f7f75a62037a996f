package engine

import "time"

// ButtonEvent is the kind of transition a button handler subscribes to.
type ButtonEvent int

const (
	Pressed ButtonEvent = iota
	Released
	Repeated
)

func (e ButtonEvent) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Repeated:
		return "repeated"
	}
	return "unknown"
}

const (
	repeatDelay    = 500 * time.Millisecond
	repeatInterval = 30 * time.Millisecond
)

type Button struct {
	game    *Game
	Name    string
	pressed bool
	held    time.Duration
	nextRep time.Duration
}

func (b *Button) IsPressed() bool { return b.pressed }

// OnEvent subscribes fn in the current scene. The subscription is suspended
// while another scene is pushed on top and dropped when its scene is popped.
func (b *Button) OnEvent(ev ButtonEvent, fn func()) {
	b.game.CurrentScene().on(eventKey{src: b, kind: kindButton, arg: int(ev)}, fn)
}

// HandlerCount reports the subscriptions for ev in the current scene.
func (b *Button) HandlerCount(ev ButtonEvent) int {
	return b.game.CurrentScene().count(eventKey{src: b, kind: kindButton, arg: int(ev)})
}

// SetPressed updates the button state, firing Pressed or Released on change.
func (b *Button) SetPressed(down bool) {
	if b.pressed == down {
		return
	}
	b.pressed = down
	b.held = 0
	b.nextRep = repeatDelay
	ev := Released
	if down {
		ev = Pressed
	}
	b.game.CurrentScene().fire(eventKey{src: b, kind: kindButton, arg: int(ev)})
}

func (b *Button) update(dt time.Duration) {
	if !b.pressed {
		return
	}
	b.held += dt
	for b.held >= b.nextRep {
		b.nextRep += repeatInterval
		b.game.CurrentScene().fire(eventKey{src: b, kind: kindButton, arg: int(Repeated)})
	}
}

type movement struct {
	sprite *Sprite
	vx, vy int
}

// Controller is one physical pad. Player numbering starts at 1.
type Controller struct {
	Player int
	A      *Button
	B      *Button
	Up     *Button
	Right  *Button
	Down   *Button
	Left   *Button
	moving []movement
}

func newController(g *Game, player int) *Controller {
	nb := func(name string) *Button { return &Button{game: g, Name: name} }
	return &Controller{
		Player: player,
		A:      nb("A"),
		B:      nb("B"),
		Up:     nb("up"),
		Right:  nb("right"),
		Down:   nb("down"),
		Left:   nb("left"),
	}
}

func (c *Controller) Buttons() []*Button {
	return []*Button{c.A, c.B, c.Up, c.Right, c.Down, c.Left}
}

// MoveSprite makes the direction buttons drive s at vx, vy pixels per second.
// Calling it again for the same sprite only updates the speed.
func (c *Controller) MoveSprite(s *Sprite, vx, vy int) {
	if s == nil {
		return
	}
	for i := range c.moving {
		if c.moving[i].sprite == s {
			c.moving[i].vx, c.moving[i].vy = vx, vy
			return
		}
	}
	c.moving = append(c.moving, movement{sprite: s, vx: vx, vy: vy})
}

// Moving reports whether s is driven by this controller.
func (c *Controller) Moving(s *Sprite) bool {
	for _, m := range c.moving {
		if m.sprite == s {
			return true
		}
	}
	return false
}

func (c *Controller) dx() int {
	d := 0
	if c.Left.pressed {
		d--
	}
	if c.Right.pressed {
		d++
	}
	return d
}

func (c *Controller) dy() int {
	d := 0
	if c.Up.pressed {
		d--
	}
	if c.Down.pressed {
		d++
	}
	return d
}

func (c *Controller) update(dt time.Duration) {
	for _, b := range c.Buttons() {
		b.update(dt)
	}
	alive := c.moving[:0]
	dx, dy := c.dx(), c.dy()
	for _, m := range c.moving {
		if m.sprite.Destroyed() {
			continue
		}
		m.sprite.SetVelocity(dx*m.vx, dy*m.vy)
		alive = append(alive, m)
	}
	c.moving = alive
}
