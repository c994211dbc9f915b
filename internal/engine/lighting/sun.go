// Package lighting derives the scene's directional light.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/catapult/pkg/math"
)

const degToRad = math32.Pi / 180

// SunDirection converts longitude/latitude in degrees to a unit vector
// pointing towards the sun. Longitude turns around the Y axis starting
// at +Z, latitude is elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * degToRad
	lat := latitude * degToRad

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
