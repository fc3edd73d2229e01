package classify

import (
	"sort"

	"github.com/sigtrace-labs/sigtrace/internal/config"
)

// DecimateMobile merges each MAC's mobile windows, sorts by time, and
// applies speed-gated spatiotemporal decimation: a point is kept only if it
// represents meaningful motion or meaningful elapsed time, and is dropped
// entirely (without updating the decimation cursor) if the implied speed
// since the last kept point exceeds maxSpeedMS.
//
// A MAC whose decimated track ends up shorter than two points is dropped
// from the output, since a single point carries no track information.
func DecimateMobile(mobileWindows []Window, cfg config.Resolved) []MobileTrackPoint {
	byMAC := make(map[MAC][]Observation)
	for _, w := range mobileWindows {
		byMAC[w.MAC] = append(byMAC[w.MAC], w.Points...)
	}

	macs := make([]MAC, 0, len(byMAC))
	for m := range byMAC {
		macs = append(macs, m)
	}
	sort.Slice(macs, func(i, j int) bool { return macs[i] < macs[j] })

	decimD := cfg.MobileDecimD
	decimT := int64(cfg.MobileDecimT.Seconds())
	maxSpeed := cfg.MaxSpeedMS

	var out []MobileTrackPoint
	for _, mac := range macs {
		pts := byMAC[mac]
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].TS < pts[j].TS })

		track := decimateTrack(pts, decimD, decimT, maxSpeed)
		if len(track) < 2 {
			continue
		}
		out = append(out, track...)
	}
	return out
}

// decimateTrack runs the keep/speed-gate walk over one MAC's time-sorted
// points. Lifted into a pure function of (thresholds, points) so it is
// directly unit-testable without constructing Windows.
func decimateTrack(pts []Observation, decimD float64, decimTSeconds int64, maxSpeedMS float64) []MobileTrackPoint {
	if len(pts) == 0 {
		return nil
	}

	last := pts[0]
	track := []MobileTrackPoint{observationToTrackPoint(last)}

	for _, curr := range pts[1:] {
		dt := curr.TS - last.TS
		d := Haversine(last.Lat, last.Lon, curr.Lat, curr.Lon)

		if d < decimD && dt < decimTSeconds {
			continue
		}

		speed := d / float64(max64(dt, 1))
		if speed > maxSpeedMS {
			// Treated as a spurious glitch (GPS jump or a recycled MAC
			// colliding with another device); last is not advanced so a
			// later, plausible point is still measured against it.
			continue
		}

		track = append(track, observationToTrackPoint(curr))
		last = curr
	}
	return track
}

func observationToTrackPoint(o Observation) MobileTrackPoint {
	return MobileTrackPoint{MAC: o.MAC, TS: o.TS, Lat: o.Lat, Lon: o.Lon}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
