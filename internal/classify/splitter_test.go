package classify

import "testing"

func singlePointWindow(lat, lon float64) Window {
	return Window{MAC: "AA", Points: []Observation{{MAC: "AA", TS: 0, Lat: lat, Lon: lon, RSSI: -50}}}
}

func TestSplitStationarySingleton(t *testing.T) {
	w := singlePointWindow(10, 10)
	stationary, mobile := Split([]Window{w}, 350.0)
	if len(stationary) != 1 || len(mobile) != 0 {
		t.Fatalf("single-point window must be stationary, got %d stationary, %d mobile", len(stationary), len(mobile))
	}
}

func TestSplitExactlyAtThresholdIsStationary(t *testing.T) {
	// Two points whose haversine distance is exactly rStationary are
	// stationary: the split uses strict '>' for mobile classification.
	const rStationary = 111.19 // ~ distance for 0.001 deg latitude
	w := Window{MAC: "AA", Points: []Observation{
		{MAC: "AA", TS: 0, Lat: 0.000, Lon: 0, RSSI: -50},
		{MAC: "AA", TS: 1, Lat: 0.001, Lon: 0, RSSI: -50},
	}}
	d := w.Diameter()
	stationary, mobile := Split([]Window{w}, d)
	if len(stationary) != 1 || len(mobile) != 0 {
		t.Fatalf("window with diameter == rStationary must be stationary, got %d stationary, %d mobile", len(stationary), len(mobile))
	}
}

func TestSplitExceedsThresholdIsMobile(t *testing.T) {
	w := Window{MAC: "AA", Points: []Observation{
		{MAC: "AA", TS: 0, Lat: 0.000, Lon: 0, RSSI: -50},
		{MAC: "AA", TS: 1, Lat: 0.010, Lon: 0, RSSI: -50}, // ~1111m
	}}
	stationary, mobile := Split([]Window{w}, 350.0)
	if len(stationary) != 0 || len(mobile) != 1 {
		t.Fatalf("window exceeding rStationary must be mobile, got %d stationary, %d mobile", len(stationary), len(mobile))
	}
}

func TestSplitPreservesInputOrder(t *testing.T) {
	tight := singlePointWindow(1, 1)
	tight.MAC = "AA"
	loose := Window{MAC: "BB", Points: []Observation{
		{MAC: "BB", TS: 0, Lat: 0, Lon: 0, RSSI: -50},
		{MAC: "BB", TS: 1, Lat: 50, Lon: 50, RSSI: -50},
	}}
	anotherTight := singlePointWindow(2, 2)
	anotherTight.MAC = "CC"

	windows := []Window{tight, loose, anotherTight}
	stationary, mobile := Split(windows, 350.0)

	if len(stationary) != 2 || len(mobile) != 1 {
		t.Fatalf("got %d stationary, %d mobile, want 2 and 1", len(stationary), len(mobile))
	}
	if stationary[0].MAC != "AA" || stationary[1].MAC != "CC" {
		t.Fatalf("stationary order not preserved: %v", stationary)
	}
	if mobile[0].MAC != "BB" {
		t.Fatalf("mobile order not preserved: %v", mobile)
	}
}
