// Command sighting-report renders the static APs and mobile tracks currently
// persisted in a classification database as an HTML scatter plot, for
// visual sanity-checking of a run's output without a full mapping UI.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sigtrace-labs/sigtrace/internal/classify"
	"github.com/sigtrace-labs/sigtrace/internal/security"
	"github.com/sigtrace-labs/sigtrace/internal/store"
)

var (
	dbFile = flag.String("db", "sightings.db", "Path to the SQLite database file")
	out    = flag.String("out", "sighting-report.html", "Output HTML file path")
)

func main() {
	flag.Parse()

	if err := security.ValidateExportPath(*out); err != nil {
		log.Fatalf("sighting-report: %v", err)
	}

	db, err := store.Open(*dbFile)
	if err != nil {
		log.Fatalf("sighting-report: open database %s: %v", *dbFile, err)
	}
	defer db.Close()

	ctx := context.Background()
	statics, err := db.StaticAPs(ctx)
	if err != nil {
		log.Fatalf("sighting-report: load static APs: %v", err)
	}
	tracks, err := db.MobileTracks(ctx)
	if err != nil {
		log.Fatalf("sighting-report: load mobile tracks: %v", err)
	}

	html, err := render(statics, tracks)
	if err != nil {
		log.Fatalf("sighting-report: render: %v", err)
	}

	if err := os.WriteFile(*out, html, 0o644); err != nil {
		log.Fatalf("sighting-report: write %s: %v", *out, err)
	}
	fmt.Printf("wrote %s: %d static APs, %d mobile track points\n", *out, len(statics), len(tracks))
}

func render(statics []classify.StaticAP, tracks []classify.MobileTrackPoint) ([]byte, error) {
	staticPts := make([]opts.ScatterData, 0, len(statics))
	maxAbs := 0.0
	for _, ap := range statics {
		if math.Abs(ap.LonMean) > maxAbs {
			maxAbs = math.Abs(ap.LonMean)
		}
		if math.Abs(ap.LatMean) > maxAbs {
			maxAbs = math.Abs(ap.LatMean)
		}
		staticPts = append(staticPts, opts.ScatterData{Value: []interface{}{ap.LonMean, ap.LatMean, ap.LocErrorM}})
	}

	trackPts := make([]opts.ScatterData, 0, len(tracks))
	for _, p := range tracks {
		trackPts = append(trackPts, opts.ScatterData{Value: []interface{}{p.Lon, p.Lat}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sighting Classification Report", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Static APs and Mobile Tracks", Subtitle: fmt.Sprintf("statics=%d track points=%d", len(statics), len(tracks))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", NameLocation: "middle", NameGap: 30}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	scatter.AddSeries("static APs", staticPts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
	scatter.AddSeries("mobile tracks", trackPts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}), charts.WithItemStyleOpts(opts.ItemStyle{Color: "#448aff"}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
