package classify

import (
	"sort"

	"github.com/sigtrace-labs/sigtrace/internal/config"
)

// groupByMAC builds a keyed index MAC -> its observations, preserving
// input order within each group. An absent key simply never appears in the
// returned map; callers must not assume a zero-value slice for unseen MACs.
func groupByMAC(obs []Observation) map[MAC][]Observation {
	byMAC := make(map[MAC][]Observation)
	for _, o := range obs {
		byMAC[o.MAC] = append(byMAC[o.MAC], o)
	}
	return byMAC
}

// sortedMACs returns the keys of byMAC in lexicographic order, which the
// pipeline uses wherever stage output must be deterministic regardless of
// map iteration order or internal parallelism (see Run).
func sortedMACs(byMAC map[MAC][]Observation) []MAC {
	macs := make([]MAC, 0, len(byMAC))
	for m := range byMAC {
		macs = append(macs, m)
	}
	sort.Slice(macs, func(i, j int) bool { return macs[i] < macs[j] })
	return macs
}

// BuildWindows partitions observations by MAC and splits each MAC's
// sorted-by-time sightings into visibility windows: maximal runs separated
// by silence gaps of at least tMaxGapSeconds. Windows shorter than
// minWindowLen observations are dropped. Ties in timestamp stay in the
// same window (a zero gap never closes it); relative order among tied
// observations is whatever sort.SliceStable leaves them in.
func BuildWindows(obs []Observation, cfg config.Resolved) []Window {
	byMAC := groupByMAC(obs)
	macs := sortedMACs(byMAC)

	var windows []Window
	gapSeconds := int64(cfg.TMaxGap.Seconds())
	for _, mac := range macs {
		pts := byMAC[mac]
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].TS < pts[j].TS })

		var cur []Observation
		flush := func() {
			if len(cur) >= cfg.MinWindowLen {
				windows = append(windows, Window{
					MAC:     mac,
					TSStart: cur[0].TS,
					TSEnd:   cur[len(cur)-1].TS,
					Points:  cur,
				})
			}
		}

		for _, p := range pts {
			if len(cur) > 0 && p.TS-cur[len(cur)-1].TS >= gapSeconds {
				flush()
				cur = nil
			}
			cur = append(cur, p)
		}
		flush()
	}
	return windows
}
