package classify

import (
	"math"
	"sort"

	"github.com/sigtrace-labs/sigtrace/internal/monitoring"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// weiszfeldEpsilonM is the convergence tolerance, in metres, between
	// successive Weiszfeld iterates.
	weiszfeldEpsilonM = 1e-6
	// weiszfeldMaxIter guards against pathological non-convergence; on
	// reaching it the last iterate is used and a warning is logged.
	weiszfeldMaxIter = 1000
	// minDistanceM floors the per-point distance used as a Weiszfeld
	// divisor, avoiding division by zero when the iterate lands exactly on
	// an input point.
	minDistanceM = 1e-12
)

// windowSummary is the first-reduction output of AggregateStatic: one
// RSSI-weighted centroid per stationary window, collapsed from its raw
// observations. Collapsing windows before running Weiszfeld is ~100x
// cheaper than running it over raw observations and is numerically
// equivalent to first order, since points inside a stationary window are
// by definition close together (diameter <= R_STATIONARY).
type windowSummary struct {
	MAC            MAC
	Lat, Lon       float64
	Weight         float64
	TSStart, TSEnd int64
	NPoints        int
}

// rssiWeight converts an RSSI reading in dBm to a linear power-proportional
// weight: 10^(rssi/10). This is scale-invariant under a constant dB offset
// applied uniformly to all observations.
func rssiWeight(rssiDBm float64) float64 {
	return math.Pow(10, rssiDBm/10)
}

// summarizeWindow collapses one stationary window into its weighted
// centroid and total weight.
func summarizeWindow(w Window) windowSummary {
	n := len(w.Points)
	lats := make([]float64, n)
	lons := make([]float64, n)
	weights := make([]float64, n)
	for i, p := range w.Points {
		lats[i] = p.Lat
		lons[i] = p.Lon
		weights[i] = rssiWeight(p.RSSI)
	}

	return windowSummary{
		MAC:     w.MAC,
		Lat:     stat.Mean(lats, weights),
		Lon:     stat.Mean(lons, weights),
		Weight:  floats.Sum(weights),
		TSStart: w.TSStart,
		TSEnd:   w.TSEnd,
		NPoints: n,
	}
}

// weiszfeldMedian computes the weight-weighted geometric median of a set of
// (lat, lon) points under haversine distance, via Weiszfeld iteration on
// the sphere. It returns the converged point and the weight-weighted mean
// distance from that point to every input (the location-error metric).
func weiszfeldMedian(lats, lons, weights []float64) (lat, lon, locErrorM float64) {
	// Initialise at the weighted centroid.
	x, y := stat.Mean(lats, weights), stat.Mean(lons, weights)

	invW := make([]float64, len(lats))
	dists := make([]float64, len(lats))

	for iter := 0; iter < weiszfeldMaxIter; iter++ {
		for i := range lats {
			d := math.Max(Haversine(x, y, lats[i], lons[i]), minDistanceM)
			dists[i] = d
			invW[i] = weights[i] / d
		}
		nx := stat.Mean(lats, invW)
		ny := stat.Mean(lons, invW)

		if Haversine(x, y, nx, ny) < weiszfeldEpsilonM {
			x, y = nx, ny
			break
		}
		x, y = nx, ny

		if iter == weiszfeldMaxIter-1 {
			monitoring.Logf("classify: Weiszfeld median did not converge within %d iterations, using final iterate", weiszfeldMaxIter)
		}
	}

	// Recompute distances against the converged iterate for the error metric.
	weightedDistSum, weightSum := 0.0, 0.0
	for i := range lats {
		d := Haversine(x, y, lats[i], lons[i])
		weightedDistSum += weights[i] * d
		weightSum += weights[i]
	}

	locErrorM = 0
	if weightSum > 0 {
		locErrorM = weightedDistSum / weightSum
	}
	return x, y, locErrorM
}

// AggregateStatic computes one StaticAP per MAC that has at least one
// stationary window. Results are sorted by MAC for deterministic output.
func AggregateStatic(stationary []Window) []StaticAP {
	byMAC := make(map[MAC][]windowSummary)
	for _, w := range stationary {
		byMAC[w.MAC] = append(byMAC[w.MAC], summarizeWindow(w))
	}

	macs := make([]MAC, 0, len(byMAC))
	for m := range byMAC {
		macs = append(macs, m)
	}
	sort.Slice(macs, func(i, j int) bool { return macs[i] < macs[j] })

	aps := make([]StaticAP, 0, len(macs))
	for _, mac := range macs {
		summaries := byMAC[mac]

		totalWeight := 0.0
		for _, s := range summaries {
			totalWeight += s.Weight
		}
		if totalWeight <= 0 {
			// RSSI >= -200 dBm keeps every weight strictly positive; this
			// should not occur, but a zero-weight MAC has no meaningful
			// position estimate, so it is dropped rather than emitted as
			// NaN.
			monitoring.Logf("classify: skipping MAC %s, all stationary windows have zero total weight", mac)
			continue
		}

		lats := make([]float64, len(summaries))
		lons := make([]float64, len(summaries))
		weights := make([]float64, len(summaries))
		firstSeen := summaries[0].TSStart
		lastSeen := summaries[0].TSEnd
		nObs := 0
		for i, s := range summaries {
			lats[i], lons[i], weights[i] = s.Lat, s.Lon, s.Weight
			if s.TSStart < firstSeen {
				firstSeen = s.TSStart
			}
			if s.TSEnd > lastSeen {
				lastSeen = s.TSEnd
			}
			nObs += s.NPoints
		}

		lat, lon, locErr := weiszfeldMedian(lats, lons, weights)
		aps = append(aps, StaticAP{
			MAC:       mac,
			LatMean:   lat,
			LonMean:   lon,
			LocErrorM: locErr,
			FirstSeen: firstSeen,
			LastSeen:  lastSeen,
			NObs:      nObs,
		})
	}
	return aps
}
