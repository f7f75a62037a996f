package mp

import (
	"strings"

	"mparcade/internal/engine"
)

const (
	indicatorZ = 99
	// hudHeight is the band at the top of the screen covered by the score
	// display. Sprites reaching into it get their indicator below them.
	hudHeight = 18
	gap       = 2
)

// Edge is where a player's indicator is anchored. EdgeBottom is also the
// fallback for sprites fully inside the viewport, which get a marker above
// their head.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// Box is a sprite's bounds in screen pixels, inclusive on every side.
type Box struct {
	Left, Top, Right, Bottom int
}

// ScreenBox converts a sprite hitbox to screen pixels, subtracting the camera
// offset unless the sprite is already camera relative.
func ScreenBox(s *engine.Sprite, cam *engine.Camera) Box {
	hb := s.Hitbox()
	b := Box{
		Left:   hb.Left.ToInt(),
		Top:    hb.Top.ToInt(),
		Right:  hb.Right.ToInt(),
		Bottom: hb.Bottom.ToInt(),
	}
	if cam != nil && !s.HasFlag(engine.FlagRelativeToCamera) {
		b.Left -= cam.DrawOffsetX
		b.Right -= cam.DrawOffsetX
		b.Top -= cam.DrawOffsetY
		b.Bottom -= cam.DrawOffsetY
	}
	return b
}

// Classify picks the edge for b. The checks run in a fixed order (left,
// right, top, bottom) so a sprite in a corner always reports the first match.
func Classify(b Box, screenW int) Edge {
	switch {
	case b.Left < 0:
		return EdgeLeft
	case b.Right > screenW:
		return EdgeRight
	case b.Top < hudHeight:
		return EdgeTop
	}
	return EdgeBottom
}

// Place returns where an iw x ih indicator is drawn for a sprite at b on a
// screenW x screenH screen.
func Place(e Edge, b Box, iw, ih, screenW, screenH int) (x, y int) {
	midY := min(max(b.Top+((b.Bottom-b.Top)>>1)-(ih>>1), 0), screenH-ih)
	midX := b.Left + ((b.Right - b.Left) >> 1) - (iw >> 1)
	switch e {
	case EdgeLeft:
		return max(b.Right+gap, 0), midY
	case EdgeRight:
		return min(b.Left-iw-gap, screenW-iw), midY
	case EdgeTop:
		return midX, max(b.Bottom+gap, 0)
	}
	return midX, min(b.Top-ih-gap, screenH-ih)
}

func (s *state) drawIndicators(target *engine.Image, cam *engine.Camera) {
	w, h := s.host.ScreenSize()
	for p := One; p <= Four; p++ {
		sp := s.playerSprite(p)
		if sp == nil || sp.HasFlag(engine.FlagDestroyed|engine.FlagInvisible) {
			continue
		}
		b := ScreenBox(sp, cam)
		e := Classify(b, w)
		glyph := s.glyphs.get(p, e)
		x, y := Place(e, b, glyph.Width(), glyph.Height(), w, h)
		target.DrawTransparentImage(glyph, x, y)
	}
}

// playerColours are the palette entries used for each slot.
var playerColours = [maxPlayers + 1]byte{0, 2, 8, 4, 7}

// PlayerColour returns the palette entry of player, or 0 for an invalid slot.
func PlayerColour(player int) byte {
	if !validPlayer(player) {
		return 0
	}
	return playerColours[player]
}

// Arrow templates, one per edge, pointing back at the sprite. 'x' is replaced
// by the player colour.
var arrowTemplates = map[Edge][]string{
	EdgeLeft: {
		"..x..",
		".xx..",
		"xxxxx",
		"xxxxx",
		"xxxxx",
		".xx..",
		"..x..",
	},
	EdgeRight: {
		"..x..",
		"..xx.",
		"xxxxx",
		"xxxxx",
		"xxxxx",
		"..xx.",
		"..x..",
	},
	EdgeTop: {
		"...x...",
		"..xxx..",
		".xxxxx.",
		"xxxxxxx",
		"..xxx..",
	},
	EdgeBottom: {
		"..xxx..",
		"xxxxxxx",
		".xxxxx.",
		"..xxx..",
		"...x...",
	},
}

type glyphKey struct {
	player int
	edge   Edge
}

type glyphCache struct {
	images map[glyphKey]*engine.Image
}

func newGlyphCache() *glyphCache {
	return &glyphCache{images: make(map[glyphKey]*engine.Image)}
}

func (c *glyphCache) get(player int, e Edge) *engine.Image {
	k := glyphKey{player: player, edge: e}
	if img, ok := c.images[k]; ok {
		return img
	}
	colour := string("0123456789abcdef"[playerColours[player]])
	rows := make([]string, len(arrowTemplates[e]))
	for i, r := range arrowTemplates[e] {
		rows[i] = strings.ReplaceAll(r, "x", colour)
	}
	img := engine.ImageFromRows(rows...)
	c.images[k] = img
	return img
}
