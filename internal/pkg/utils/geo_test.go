package utils

import (
	"math"
	"testing"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	cases := []struct {
		lat, lon float64
	}{
		{0, 0},
		{-6.2, 106.8},
		{52.52, 13.405},
		{-90, 0},
		{90, 180},
	}
	for _, c := range cases {
		got := DistanceMeters(c.lat, c.lon, c.lat, c.lon)
		if got != 0 {
			t.Errorf("DistanceMeters(%v,%v,%v,%v) = %v, want 0", c.lat, c.lon, c.lat, c.lon, got)
		}
	}
}

func TestDistanceMeters_KnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		// One degree of latitude is ~111.2km regardless of longitude.
		{"one degree latitude", 0, 0, 1, 0, 111195, 50},
		// ~78m offset used by the attendance auto-approval scenario.
		{"small offset near equator", 0, 0, 0.0005, 0.0005, 78.6, 1},
		{"jakarta to surabaya", -6.2088, 106.8456, -7.2575, 112.7521, 663000, 5000},
	}
	for _, c := range cases {
		got := DistanceMeters(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: DistanceMeters = %v, want %v (±%v)", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := DistanceMeters(-6.2, 106.8, 52.52, 13.405)
	b := DistanceMeters(52.52, 13.405, -6.2, 106.8)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}
