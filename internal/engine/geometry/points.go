package geometry

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/wireglobe/pkg/math"
)

// SurfacePoints scatters count points uniformly over a sphere of the given
// radius.
func SurfacePoints(count int, radius float32, rng *rand.Rand) []math.Vec3 {
	points := make([]math.Vec3, 0, count)
	r := float64(radius)
	for range count {
		theta := rng.Float64() * 2 * gomath.Pi
		phi := gomath.Acos(rng.Float64()*2 - 1)

		sinPhi, cosPhi := gomath.Sincos(phi)
		sinTheta, cosTheta := gomath.Sincos(theta)
		points = append(points, math.Vec3{
			X: float32(r * sinPhi * cosTheta),
			Y: float32(r * sinPhi * sinTheta),
			Z: float32(r * cosPhi),
		})
	}
	return points
}

// MarkerTriangle returns the marker shape in its local frame: the tip points
// along +Y (direction of travel), the base lies on the X axis, +Z is up.
func MarkerTriangle(size float32) [3]math.Vec3 {
	return [3]math.Vec3{
		{X: 0, Y: size, Z: 0},
		{X: -size * 0.5, Y: 0, Z: 0},
		{X: size * 0.5, Y: 0, Z: 0},
	}
}
