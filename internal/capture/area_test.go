package capture

import (
	"math"
	"testing"

	"github.com/shaswat2031/rungo/internal/shared/geo"
	"github.com/shaswat2031/rungo/internal/zone"
)

func TestAreaSquareAtEquator(t *testing.T) {
	// 0.001 degree is ~111m at the equator.
	path := Path{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.001, Longitude: 0},
		{Latitude: 0.001, Longitude: 0.001},
		{Latitude: 0, Longitude: 0.001},
	}

	side := geo.HaversineM(0, 0, 0.001, 0)
	want := side * side
	got := AreaM2(path)
	if math.Abs(got-want)/want > 0.01 {
		t.Fatalf("area %v not within 1%% of %v", got, want)
	}
}

func TestAreaClosesOpenRing(t *testing.T) {
	open := Path{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.001, Longitude: 0},
		{Latitude: 0.001, Longitude: 0.001},
		{Latitude: 0, Longitude: 0.001},
	}
	closed := append(open.Clone(), open[0])

	if AreaM2(open) != AreaM2(closed) {
		t.Fatalf("open and explicitly closed rings should agree")
	}
}

func TestAreaTooFewPoints(t *testing.T) {
	path := Path{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.001, Longitude: 0},
	}
	if AreaM2(path) != 0 {
		t.Fatalf("degenerate path should have zero area")
	}
}

func TestZoneMultiplierNoZoneInRange(t *testing.T) {
	path := walkSquare(48.8566, 2.3522, 30) // Paris, far from every default zone
	if m := ZoneMultiplier(path, zone.Defaults()); m != 1 {
		t.Fatalf("expected multiplier 1, got %v", m)
	}
}

func TestZoneMultiplierLastMatchWins(t *testing.T) {
	path := walkSquare(21.1702, 72.8311, 30)
	zones := []zone.HotZone{
		{ID: "a", Lat: 21.1702, Lng: 72.8311, RadiusM: 1000, Multiplier: 2.5},
		{ID: "b", Lat: 21.1703, Lng: 72.8312, RadiusM: 1000, Multiplier: 1.5},
	}

	// Both zones cover the final vertex; the later entry overwrites.
	if m := ZoneMultiplier(path, zones); m != 1.5 {
		t.Fatalf("expected last matching zone to win, got %v", m)
	}
}

func TestFinalAreaWithHotZone(t *testing.T) {
	path := walkSquare(21.1702, 72.8311, 30)
	zones := []zone.HotZone{
		{ID: "s1", Lat: 21.1702, Lng: 72.8311, RadiusM: 1000, Multiplier: 2.5},
	}

	raw := AreaM2(path)
	final := FinalAreaM2(path, zones)
	if math.Abs(final-raw*2.5) > 1e-6 {
		t.Fatalf("expected %v, got %v", raw*2.5, final)
	}
}

func TestEndToEndWalkCapture(t *testing.T) {
	// ~50m x 50m square at Surat coordinates, 15s per leg: walking pace.
	lat, lng := 21.1702, 72.8311
	dLat := 0.00045
	dLng := dLat / math.Cos(lat*math.Pi/180)
	start := int64(1_700_000_000_000)
	path := Path{
		{Latitude: lat, Longitude: lng, Timestamp: start},
		{Latitude: lat + dLat, Longitude: lng, Timestamp: start + 15000},
		{Latitude: lat + dLat, Longitude: lng + dLng, Timestamp: start + 30000},
		{Latitude: lat, Longitude: lng + dLng, Timestamp: start + 45000},
		{Latitude: lat, Longitude: lng, Timestamp: start + 59000},
	}

	if !LoopClosed(path) {
		t.Fatalf("expected loop to close")
	}
	if err := ValidatePath(path); err != nil {
		t.Fatalf("walking loop rejected: %v", err)
	}

	area := FinalAreaM2(path, nil)
	if math.Abs(area-2500)/2500 > 0.05 {
		t.Fatalf("expected ~2500 m^2, got %v", area)
	}
}

func TestEndToEndVehicleRejected(t *testing.T) {
	path := walkSquare(21.1702, 72.8311, 30)
	// One leg at ~15 m/s.
	path[1].Timestamp = path[0].Timestamp + 3300
	for i := 2; i < len(path); i++ {
		path[i].Timestamp = path[i-1].Timestamp + 30000
	}

	if !LoopClosed(path) {
		t.Fatalf("geometry should still close")
	}
	if err := ValidatePath(path); err == nil {
		t.Fatalf("expected vehicle-speed loop to be rejected")
	}
}
