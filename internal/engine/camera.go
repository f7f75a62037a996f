package engine

// Camera holds the scroll offset subtracted from world coordinates when drawing.
type Camera struct {
	DrawOffsetX int
	DrawOffsetY int
	follow      *Sprite
}

// Follow keeps the camera centred on s. Passing nil stops following.
func (c *Camera) Follow(s *Sprite) { c.follow = s }

func (c *Camera) update(screenW, screenH int) {
	if c.follow == nil || c.follow.Destroyed() {
		return
	}
	c.DrawOffsetX = c.follow.X() - screenW/2
	c.DrawOffsetY = c.follow.Y() - screenH/2
}
