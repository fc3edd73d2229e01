package classify

// Split partitions windows into stationary and mobile groups by intra-window
// diameter: a window with diameter <= rStationary is stationary, otherwise
// mobile. Order within each output slice matches the input order.
//
// Diameter is O(k^2) per window where k is the point count, with an
// early-exit as soon as any pair's distance exceeds rStationary - windows
// are bounded in practice by the gap cuts from BuildWindows so this stays
// cheap.
func Split(windows []Window, rStationary float64) (stationary, mobile []Window) {
	for _, w := range windows {
		if windowDiameterExceeds(w, rStationary) {
			mobile = append(mobile, w)
		} else {
			stationary = append(stationary, w)
		}
	}
	return stationary, mobile
}

// windowDiameterExceeds reports whether w's diameter is strictly greater
// than limit, short-circuiting on the first pair that crosses it instead of
// computing the full diameter.
func windowDiameterExceeds(w Window, limit float64) bool {
	for i := 0; i < len(w.Points); i++ {
		for j := i + 1; j < len(w.Points); j++ {
			if Haversine(w.Points[i].Lat, w.Points[i].Lon, w.Points[j].Lat, w.Points[j].Lon) > limit {
				return true
			}
		}
	}
	return false
}
