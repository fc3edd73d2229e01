// Package classify implements the core classification pipeline of the Wi-Fi
// forensics toolkit: it turns a flat batch of geo-tagged MAC sightings into
// two derived artifacts, a set of estimated static access-point locations
// and a set of decimated mobile device tracks.
//
// The pipeline runs in six strictly sequential stages, each consuming the
// previous stage's output:
//
//  1. Load      - pull deduplicated, geotagged observations (external collaborator, see Loader)
//  2. Window    - group each MAC's observations into gap-separated visibility windows
//  3. Split     - classify each window stationary or mobile by intra-window diameter
//  4. Aggregate - collapse stationary windows into one RSSI-weighted geometric-median StaticAP per MAC
//  5. Decimate  - merge, sort, and speed-gate each MAC's mobile windows into a track
//  6. Write     - atomically replace the derived tables (external collaborator, see Writer)
//
// The pipeline is batch, run-to-completion, and single-threaded at the
// driver level; stages 4 and 5 may parallelise their per-MAC work
// internally (see Run) but always emit in MAC-lexicographic order so the
// result is deterministic given identical input and configuration.
//
// No SQL, HTTP, or CLI code belongs in this package - those are external
// collaborators realised in internal/store and cmd/.
package classify
