package engine

import "github.com/google/uuid"

// SpriteFlag is a bit set describing how a sprite is treated by the engine.
type SpriteFlag uint16

const (
	FlagDestroyed SpriteFlag = 1 << iota
	FlagInvisible
	// FlagRelativeToCamera marks sprites positioned in screen space.
	FlagRelativeToCamera
	FlagStayInScreen
)

// Hitbox is the axis aligned box a sprite occupies, in world coordinates
// (or screen coordinates for camera relative sprites). Right and Bottom are
// inclusive.
type Hitbox struct {
	Left, Top, Right, Bottom Fx
}

type Sprite struct {
	ID    string
	Kind  int
	img   *Image
	left  Fx
	top   Fx
	VX    Fx
	VY    Fx
	flags SpriteFlag
}

func NewSprite(img *Image, kind int) *Sprite {
	if img == nil {
		img = NewImage(1, 1)
	}
	return &Sprite{
		ID:   uuid.NewString(),
		Kind: kind,
		img:  img,
	}
}

func (s *Sprite) Image() *Image { return s.img }

func (s *Sprite) SetImage(img *Image) {
	if img != nil {
		s.img = img
	}
}

func (s *Sprite) Width() int  { return s.img.Width() }
func (s *Sprite) Height() int { return s.img.Height() }

// X and Y report the sprite centre in whole pixels.
func (s *Sprite) X() int { return s.left.ToInt() + s.img.Width()/2 }
func (s *Sprite) Y() int { return s.top.ToInt() + s.img.Height()/2 }

// SetPosition moves the sprite so that its centre sits at (x, y).
func (s *Sprite) SetPosition(x, y int) {
	s.left = FxFromInt(x - s.img.Width()/2)
	s.top = FxFromInt(y - s.img.Height()/2)
}

func (s *Sprite) SetVelocity(vx, vy int) {
	s.VX = FxFromInt(vx)
	s.VY = FxFromInt(vy)
}

func (s *Sprite) Left() Fx { return s.left }
func (s *Sprite) Top() Fx  { return s.top }

func (s *Sprite) Hitbox() Hitbox {
	return Hitbox{
		Left:   s.left,
		Top:    s.top,
		Right:  s.left + FxFromInt(s.img.Width()-1),
		Bottom: s.top + FxFromInt(s.img.Height()-1),
	}
}

func (s *Sprite) Flags() SpriteFlag { return s.flags }

func (s *Sprite) HasFlag(f SpriteFlag) bool { return s.flags&f != 0 }

func (s *Sprite) SetFlag(f SpriteFlag, on bool) {
	if on {
		s.flags |= f
	} else {
		s.flags &^= f
	}
}

func (s *Sprite) Destroy() { s.flags |= FlagDestroyed }

func (s *Sprite) Destroyed() bool { return s.HasFlag(FlagDestroyed) }

func (s *Sprite) move(dt float64) {
	s.left += FxFromFloat(s.VX.Float() * dt)
	s.top += FxFromFloat(s.VY.Float() * dt)
}
