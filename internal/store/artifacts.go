package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sigtrace-labs/sigtrace/internal/classify"
)

// compile-time assertion: *DB satisfies classify.Writer.
var _ classify.Writer = (*DB)(nil)

// ReplaceArtifacts atomically swaps the static_aps and mobile_track tables
// for the results of one run: both tables are cleared and repopulated
// inside a single transaction, so a reader never observes a half-written
// run and a crash mid-write leaves the previous run's tables intact.
func (db *DB) ReplaceArtifacts(ctx context.Context, statics []classify.StaticAP, tracks []classify.MobileTrackPoint) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM static_aps`); err != nil {
		return fmt.Errorf("clear static_aps: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM mobile_track`); err != nil {
		return fmt.Errorf("clear mobile_track: %w", err)
	}

	apStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO static_aps (mac, lat_mean, lon_mean, loc_error_m, first_seen, last_seen, n_obs)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare static_aps insert: %w", err)
	}
	defer apStmt.Close()

	for _, ap := range statics {
		if _, err := apStmt.ExecContext(ctx, string(ap.MAC), ap.LatMean, ap.LonMean, ap.LocErrorM, ap.FirstSeen, ap.LastSeen, ap.NObs); err != nil {
			return fmt.Errorf("insert static AP %s: %w", ap.MAC, err)
		}
	}

	trackStmt, err := tx.PrepareContext(ctx, `INSERT INTO mobile_track (mac, ts, lat, lon) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare mobile_track insert: %w", err)
	}
	defer trackStmt.Close()

	for _, p := range tracks {
		if _, err := trackStmt.ExecContext(ctx, string(p.MAC), p.TS, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("insert track point %s@%d: %w", p.MAC, p.TS, err)
		}
	}

	return tx.Commit()
}

// RecordRun appends a summary row for a completed pipeline run, for
// historical auditing of how classification output has evolved over time.
func (db *DB) RecordRun(ctx context.Context, result classify.Result, startedAtUnix int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO classification_runs
			(run_id, started_at, n_observations, n_windows, n_stationary_windows, n_mobile_windows, n_static_aps, n_track_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.RunID, startedAtUnix, result.NObservations, result.NWindows,
		result.NStationaryWindows, result.NMobileWindows, len(result.StaticAPs), len(result.MobileTracks),
	)
	if err != nil {
		return fmt.Errorf("record classification run %s: %w", result.RunID, err)
	}
	return nil
}

// StaticAPs returns every persisted static AP, ordered by MAC.
func (db *DB) StaticAPs(ctx context.Context) ([]classify.StaticAP, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT mac, lat_mean, lon_mean, loc_error_m, first_seen, last_seen, n_obs
		FROM static_aps ORDER BY mac
	`)
	if err != nil {
		return nil, fmt.Errorf("query static_aps: %w", err)
	}
	defer rows.Close()

	var out []classify.StaticAP
	for rows.Next() {
		var ap classify.StaticAP
		var mac string
		if err := rows.Scan(&mac, &ap.LatMean, &ap.LonMean, &ap.LocErrorM, &ap.FirstSeen, &ap.LastSeen, &ap.NObs); err != nil {
			return nil, fmt.Errorf("scan static_aps row: %w", err)
		}
		ap.MAC = classify.MAC(mac)
		out = append(out, ap)
	}
	return out, rows.Err()
}

// MobileTracks returns every persisted mobile track point, ordered by MAC
// then timestamp.
func (db *DB) MobileTracks(ctx context.Context) ([]classify.MobileTrackPoint, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT mac, ts, lat, lon FROM mobile_track ORDER BY mac, ts
	`)
	if err != nil {
		return nil, fmt.Errorf("query mobile_track: %w", err)
	}
	defer rows.Close()

	var out []classify.MobileTrackPoint
	for rows.Next() {
		var p classify.MobileTrackPoint
		var mac string
		if err := rows.Scan(&mac, &p.TS, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("scan mobile_track row: %w", err)
		}
		p.MAC = classify.MAC(mac)
		out = append(out, p)
	}
	return out, rows.Err()
}
