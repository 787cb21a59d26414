package core

// GrowthSign is the rate at which a region's radius changes: one of
// Shrinking (-1), Frozen (0), Growing (+1). Regions only ever move at unit
// speed; everything else in the schedule derives from that.
type GrowthSign int8

const (
	// Shrinking marks a region retracting at unit rate (inner tree regions).
	Shrinking GrowthSign = -1
	// Frozen marks a static region (matched, or a blossom child).
	Frozen GrowthSign = 0
	// Growing marks a region expanding at unit rate (outer tree regions).
	Growing GrowthSign = 1
)

// VaryingRadius is a piecewise-linear radius: at time t its value is
// Base + Slope·(t − T0). A region's radius is re-based every time its growth
// sign changes, so Base always holds the radius at T0.
type VaryingRadius struct {
	Base  int64
	Slope GrowthSign
	T0    int64
}

// NewVaryingRadius returns a radius of the given base value at time t,
// changing at rate slope.
func NewVaryingRadius(base int64, slope GrowthSign, t int64) VaryingRadius {
	return VaryingRadius{Base: base, Slope: slope, T0: t}
}

// Value evaluates the radius at absolute time t.
func (v VaryingRadius) Value(t int64) int64 {
	return v.Base + int64(v.Slope)*(t-v.T0)
}

// WithSlopeAt returns a radius with the new slope whose value at time t is
// unchanged. This is the re-basing used by set-region-growth.
func (v VaryingRadius) WithSlopeAt(slope GrowthSign, t int64) VaryingRadius {
	return VaryingRadius{Base: v.Value(t), Slope: slope, T0: t}
}

// TimeOfZero returns the future time at which the radius reaches zero.
// Only meaningful for a shrinking radius; ok is false otherwise.
func (v VaryingRadius) TimeOfZero() (int64, bool) {
	if v.Slope != Shrinking {
		return 0, false
	}

	return v.T0 + v.Base, true
}

// TimeOfValue returns the future time at which the radius reaches target,
// or ok=false when the radius never gets there (wrong direction or frozen).
func (v VaryingRadius) TimeOfValue(target int64) (int64, bool) {
	switch v.Slope {
	case Growing:
		if target < v.Base {
			return 0, false
		}

		return v.T0 + (target - v.Base), true
	case Shrinking:
		if target > v.Base {
			return 0, false
		}

		return v.T0 + (v.Base - target), true
	default:
		return 0, false
	}
}
