package store

import (
	"context"
	"fmt"

	"github.com/sigtrace-labs/sigtrace/internal/classify"
)

// compile-time assertion: *DB satisfies classify.Loader.
var _ classify.Loader = (*DB)(nil)

// LoadObservations returns every geotagged sighting in the database. Rows
// with a null lat/lon (a sighting recorded before a GPS fix was available)
// are excluded, since they carry no position information this pipeline can
// use. DISTINCT collapses exact (mac, ts, lat, lon, rssi) duplicates per
// spec.md §4.1; near-duplicates that differ only in rssi are kept as
// separate observations, since that is not what "identical 5-tuple" covers.
func (db *DB) LoadObservations(ctx context.Context) ([]classify.Observation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT mac, ts, lat, lon, rssi
		FROM observations
		WHERE lat IS NOT NULL AND lon IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var obs []classify.Observation
	for rows.Next() {
		var o classify.Observation
		var mac string
		if err := rows.Scan(&mac, &o.TS, &o.Lat, &o.Lon, &o.RSSI); err != nil {
			return nil, fmt.Errorf("scan observation row: %w", err)
		}
		o.MAC = classify.MAC(mac)
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observation rows: %w", err)
	}
	return obs, nil
}

// InsertObservations bulk-inserts raw sightings, for use by an ingestor or
// test fixture that populates this store ahead of a classification run.
func (db *DB) InsertObservations(ctx context.Context, obs []classify.Observation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations (mac, ts, lat, lon, rssi) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, string(o.MAC), o.TS, o.Lat, o.Lon, o.RSSI); err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
	}
	return tx.Commit()
}
