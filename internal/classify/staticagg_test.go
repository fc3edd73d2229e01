package classify

import (
	"math"
	"testing"
)

func TestAggregateStaticSinglePointWindow(t *testing.T) {
	w := Window{MAC: "AA", TSStart: 100, TSEnd: 100, Points: []Observation{
		{MAC: "AA", TS: 100, Lat: 10, Lon: 20, RSSI: -50},
	}}
	aps := AggregateStatic([]Window{w})
	if len(aps) != 1 {
		t.Fatalf("got %d static APs, want 1", len(aps))
	}
	ap := aps[0]
	if math.Abs(ap.LatMean-10) > 1e-9 || math.Abs(ap.LonMean-20) > 1e-9 {
		t.Errorf("single-point median = (%v,%v), want (10,20)", ap.LatMean, ap.LonMean)
	}
	if ap.LocErrorM > 1e-6 {
		t.Errorf("single-point loc error = %v, want ~0", ap.LocErrorM)
	}
	if ap.FirstSeen != 100 || ap.LastSeen != 100 || ap.NObs != 1 {
		t.Errorf("got FirstSeen=%d LastSeen=%d NObs=%d, want 100/100/1", ap.FirstSeen, ap.LastSeen, ap.NObs)
	}
}

func TestAggregateStaticInvariants(t *testing.T) {
	windows := []Window{
		{MAC: "AA", TSStart: 100, TSEnd: 200, Points: []Observation{
			{MAC: "AA", TS: 100, Lat: 10.0000, Lon: 20.0000, RSSI: -40},
			{MAC: "AA", TS: 200, Lat: 10.0005, Lon: 20.0003, RSSI: -60},
		}},
		{MAC: "AA", TSStart: 500, TSEnd: 600, Points: []Observation{
			{MAC: "AA", TS: 500, Lat: 10.0002, Lon: 20.0001, RSSI: -50},
		}},
	}
	aps := AggregateStatic(windows)
	if len(aps) != 1 {
		t.Fatalf("got %d static APs, want 1", len(aps))
	}
	ap := aps[0]
	if ap.LocErrorM < 0 {
		t.Errorf("LocErrorM = %v, must be >= 0", ap.LocErrorM)
	}
	if ap.FirstSeen > ap.LastSeen {
		t.Errorf("FirstSeen %d > LastSeen %d", ap.FirstSeen, ap.LastSeen)
	}
	if ap.NObs < 1 {
		t.Errorf("NObs = %d, want >= 1", ap.NObs)
	}
	if ap.FirstSeen != 100 || ap.LastSeen != 600 || ap.NObs != 3 {
		t.Errorf("got FirstSeen=%d LastSeen=%d NObs=%d, want 100/600/3", ap.FirstSeen, ap.LastSeen, ap.NObs)
	}
}

func TestAggregateStaticRSSIWeightingPullsTowardStrongerSignal(t *testing.T) {
	// Two points straddling 10.0000/20.0000: a strong (-30dBm) observation
	// at the origin and a weak (-90dBm) observation 0.001 deg north. The
	// weighted median should land much closer to the strong point.
	w := Window{MAC: "AA", TSStart: 0, TSEnd: 1, Points: []Observation{
		{MAC: "AA", TS: 0, Lat: 10.0000, Lon: 20.0000, RSSI: -30},
		{MAC: "AA", TS: 1, Lat: 10.0010, Lon: 20.0000, RSSI: -90},
	}}
	aps := AggregateStatic([]Window{w})
	ap := aps[0]

	distToStrong := Haversine(ap.LatMean, ap.LonMean, 10.0000, 20.0000)
	distToWeak := Haversine(ap.LatMean, ap.LonMean, 10.0010, 20.0000)
	if distToStrong >= distToWeak {
		t.Errorf("median should sit closer to the 60dB-stronger point: distToStrong=%v distToWeak=%v", distToStrong, distToWeak)
	}
}

func TestAggregateStaticScaleInvariantUnderConstantRSSIOffset(t *testing.T) {
	base := []Window{
		{MAC: "AA", TSStart: 0, TSEnd: 1, Points: []Observation{
			{MAC: "AA", TS: 0, Lat: 10.0000, Lon: 20.0000, RSSI: -40},
			{MAC: "AA", TS: 1, Lat: 10.0005, Lon: 20.0002, RSSI: -70},
		}},
	}
	offset := []Window{
		{MAC: "AA", TSStart: 0, TSEnd: 1, Points: []Observation{
			{MAC: "AA", TS: 0, Lat: 10.0000, Lon: 20.0000, RSSI: -40 + 15},
			{MAC: "AA", TS: 1, Lat: 10.0005, Lon: 20.0002, RSSI: -70 + 15},
		}},
	}
	a := AggregateStatic(base)[0]
	b := AggregateStatic(offset)[0]
	if math.Abs(a.LatMean-b.LatMean) > 1e-9 || math.Abs(a.LonMean-b.LonMean) > 1e-9 {
		t.Errorf("median shifted under constant RSSI offset: base=(%v,%v) offset=(%v,%v)", a.LatMean, a.LonMean, b.LatMean, b.LonMean)
	}
}

func TestAggregateStaticSortedByMAC(t *testing.T) {
	windows := []Window{
		{MAC: "ZZ", TSStart: 0, TSEnd: 0, Points: []Observation{{MAC: "ZZ", TS: 0, Lat: 1, Lon: 1, RSSI: -50}}},
		{MAC: "AA", TSStart: 0, TSEnd: 0, Points: []Observation{{MAC: "AA", TS: 0, Lat: 2, Lon: 2, RSSI: -50}}},
		{MAC: "MM", TSStart: 0, TSEnd: 0, Points: []Observation{{MAC: "MM", TS: 0, Lat: 3, Lon: 3, RSSI: -50}}},
	}
	aps := AggregateStatic(windows)
	if len(aps) != 3 || aps[0].MAC != "AA" || aps[1].MAC != "MM" || aps[2].MAC != "ZZ" {
		t.Fatalf("AggregateStatic output not sorted by MAC: %v", aps)
	}
}

func TestAggregateStaticDeterministicAcrossRuns(t *testing.T) {
	windows := []Window{
		{MAC: "AA", TSStart: 0, TSEnd: 10, Points: []Observation{
			{MAC: "AA", TS: 0, Lat: 10.0001, Lon: 20.0002, RSSI: -45},
			{MAC: "AA", TS: 5, Lat: 10.0003, Lon: 20.0001, RSSI: -55},
			{MAC: "AA", TS: 10, Lat: 10.0002, Lon: 20.0004, RSSI: -65},
		}},
	}
	a := AggregateStatic(windows)
	b := AggregateStatic(windows)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic output length: %d vs %d", len(a), len(b))
	}
	if a[0] != b[0] {
		t.Errorf("non-deterministic static AP: %+v vs %+v", a[0], b[0])
	}
}
