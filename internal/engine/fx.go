package engine

// Fx is a fixed point number with 8 fractional bits, the unit sprites use for
// position, velocity and hitbox bounds.
type Fx int32

const fxShift = 8

func FxFromInt(v int) Fx { return Fx(v << fxShift) }

func FxFromFloat(v float64) Fx { return Fx(v * (1 << fxShift)) }

// ToInt drops the fractional bits with an arithmetic shift, so negative values
// round toward minus infinity.
func (f Fx) ToInt() int { return int(f) >> fxShift }

func (f Fx) Float() float64 { return float64(f) / (1 << fxShift) }
