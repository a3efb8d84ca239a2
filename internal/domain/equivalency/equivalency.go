// Package equivalency computes reaction times and the pitch speeds that
// reproduce a reaction time at other release distances.
//
// Every function here is pure. Callers must gate input through Validate (or
// CheckInput) first; the formulas do not guard against zero or negative
// divisors and return Inf/NaN in that case.
package equivalency

import "math"

// Domain constants shared with the presentation layer.
const (
	// MinDistance is the shortest valid release distance in feet.
	MinDistance Distance = 15.0
	// MaxDistance is the longest valid release distance in feet (MLB rubber to plate).
	MaxDistance Distance = 60.5
	// DistanceStep is the spacing of the equivalency curve in feet.
	DistanceStep Distance = 0.5
	// MPHToFPS converts miles per hour to feet per second.
	MPHToFPS = 1.467
)

// Speed is a pitch speed in miles per hour.
type Speed float64

// Distance is a release distance in feet.
type Distance float64

// Seconds is an elapsed time in seconds.
type Seconds float64

// FPS returns the speed in feet per second.
func (s Speed) FPS() float64 {
	return float64(s) * MPHToFPS
}

// ReactionTime returns the time a pitch thrown at speed needs to cover distance.
func ReactionTime(speed Speed, distance Distance) Seconds {
	return Seconds(float64(distance) / speed.FPS())
}

// EquivalentSpeed returns the speed that covers distance in exactly t.
func EquivalentSpeed(t Seconds, distance Distance) Speed {
	return Speed(float64(distance) / float64(t) / MPHToFPS)
}

// EquivalentSpeeds maps every distance to the speed that covers it in t.
// The result is parallel to distances.
func EquivalentSpeeds(t Seconds, distances []Distance) []Speed {
	speeds := make([]Speed, len(distances))
	for i, d := range distances {
		speeds[i] = EquivalentSpeed(t, d)
	}
	return speeds
}

// RangeLen is the number of distances DistanceRange returns.
func RangeLen() int {
	return int(math.Floor(float64((MaxDistance-MinDistance)/DistanceStep))) + 1
}

// DistanceRange returns MinDistance..MaxDistance inclusive in DistanceStep
// increments. Elements are computed from their index so the last one is
// exactly MaxDistance.
func DistanceRange() []Distance {
	n := RangeLen()
	out := make([]Distance, n)
	for i := range out {
		out[i] = MinDistance + Distance(i)*DistanceStep
	}
	return out
}
