package lighting

import (
	"testing"

	"github.com/Faultbox/catapult/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"south horizon", 0, 0, math.Vec3{Z: 1}},
		{"east horizon", 90, 0, math.Vec3{X: 1}},
		{"zenith", 123, 90, math.Vec3{Y: 1}},
		{"west horizon", 270, 0, math.Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
			}
		})
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	for lon := float32(0); lon < 360; lon += 37 {
		for lat := float32(-90); lat <= 90; lat += 15 {
			if l := SunDirection(lon, lat).Length(); l < 0.9999 || l > 1.0001 {
				t.Errorf("SunDirection(%v, %v) length %v", lon, lat, l)
			}
		}
	}
}
