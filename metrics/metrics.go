package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MapsBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_maps_built_total",
		Help: "Total number of maps built from road data",
	})
	MapBuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapstd_map_build_duration_ms",
		Help:    "Map build (fetch + graph construction) duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
	PathQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_path_queries_total",
		Help: "Total shortest path queries",
	})
	PathsNotFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_paths_not_found_total",
		Help: "Total shortest path queries with no route",
	})
	DijkstraDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapstd_dijkstra_duration_ms",
		Help:    "Single-source Dijkstra pass duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
	BoundaryEntriesFound = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapstd_boundary_entries_found",
		Help:    "Boundary entries found per computation",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})
	DemolitionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_demolitions_total",
		Help: "Total committed demolitions",
	})
	DemolitionSimulationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_demolition_simulations_total",
		Help: "Total demolition dry runs",
	})
	VisibilityPolygonsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_visibility_polygons_total",
		Help: "Total visibility polygon computations",
	})
	RoadFetchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mapstd_road_fetch_failures_total",
		Help: "Total failed Overpass road fetches",
	})
)

func init() {
	prometheus.MustRegister(MapsBuiltTotal)
	prometheus.MustRegister(MapBuildDurationMs)
	prometheus.MustRegister(PathQueriesTotal)
	prometheus.MustRegister(PathsNotFoundTotal)
	prometheus.MustRegister(DijkstraDurationMs)
	prometheus.MustRegister(BoundaryEntriesFound)
	prometheus.MustRegister(DemolitionsTotal)
	prometheus.MustRegister(DemolitionSimulationsTotal)
	prometheus.MustRegister(VisibilityPolygonsTotal)
	prometheus.MustRegister(RoadFetchFailuresTotal)
}

// Handler exposes the registered collectors for scraping; mounted on
// /metrics by the server.
func Handler() http.Handler { return promhttp.Handler() }
