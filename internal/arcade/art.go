package arcade

import (
	"mparcade/internal/engine"
	"mparcade/internal/mp"
)

var coinImage = engine.ImageFromRows(
	".55.",
	"5445",
	"5445",
	".55.",
)

var hazardImage = engine.ImageFromRows(
	"f.ff.f",
	".ffff.",
	"ff22ff",
	"ff22ff",
	".ffff.",
	"f.ff.f",
)

func playerImage(p int) *engine.Image {
	img := engine.NewImage(8, 8)
	img.FillRect(1, 0, 6, 8, mp.PlayerColour(p))
	img.FillRect(0, 1, 8, 6, mp.PlayerColour(p))
	img.SetPixel(2, 2, 1)
	img.SetPixel(5, 2, 1)
	img.SetPixel(2, 3, 15)
	img.SetPixel(5, 3, 15)
	return img
}

// drawHUD paints one column per participant across the top 18 rows: the
// player colour, a score bar and one square per life.
func (a *Arena) drawHUD(target *engine.Image, _ *engine.Camera) {
	target.FillRect(0, 0, target.Width(), 18, 15)
	col := target.Width() / len(mp.AllPlayers())
	for _, p := range a.participants {
		x := (p - 1) * col
		target.FillRect(x+2, 2, 5, 5, mp.PlayerColour(p))

		score := min(a.players.PlayerState(p, mp.Score), WinScore)
		target.FillRect(x+9, 3, score*(col-12)/WinScore, 3, 5)

		lives := a.players.PlayerState(p, mp.Lives)
		for i := range max(lives, 0) {
			target.FillRect(x+2+i*5, 10, 3, 3, 2)
		}
	}
}

// drawResults fills the screen with the winner colour and shows every
// participant's final score as a bar.
func (a *Arena) drawResults(target *engine.Image, _ *engine.Camera) {
	w := target.Width()
	target.FillRect(10, 10, w-20, 30, mp.PlayerColour(a.winner))
	for i, p := range a.participants {
		y := 50 + i*14
		target.FillRect(10, y, 8, 8, mp.PlayerColour(p))
		score := min(a.players.PlayerState(p, mp.Score), WinScore)
		target.FillRect(24, y+2, score*(w-40)/WinScore, 4, 1)
	}
}
