package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bicyclespokesperson/MapsTD-sub000/config"
	"github.com/bicyclespokesperson/MapsTD-sub000/elevation"
	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/metrics"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
	"github.com/bicyclespokesperson/MapsTD-sub000/roadnetwork"
	"github.com/bicyclespokesperson/MapsTD-sub000/store"
)

var ErrMapNotFound = errors.New("map not found")

// RoadFetcher and GridFetcher let tests swap the network collaborators.
type RoadFetcher interface {
	FetchRoads(ctx context.Context, bounds geometry.BoundingBox) ([]models.RoadSegment, error)
}

type GridFetcher interface {
	FetchGrid(ctx context.Context, bounds geometry.BoundingBox, rows, cols int) *elevation.Grid
}

// MapSession is one live game map. Its mutex serializes graph mutation
// against queries; the core data structures do no locking of their own.
type MapSession struct {
	ID      string
	Name    string
	Polygon []models.Location
	Target  models.Location
	Area    float64

	network *roadnetwork.RoadNetwork
	grid    *elevation.Grid

	// entries from the last FindBoundaryEntries; nil after any
	// mutation until recomputed
	entries []models.BoundaryEntry

	mu sync.Mutex
}

// MapService owns every live map session plus the collaborators needed
// to build new ones.
type MapService struct {
	cfg   config.Config
	roads RoadFetcher
	grids GridFetcher
	saved *store.MapStore

	mu       sync.RWMutex
	sessions map[string]*MapSession
}

func NewMapService(cfg config.Config, roads RoadFetcher, grids GridFetcher, saved *store.MapStore) *MapService {
	return &MapService{
		cfg:      cfg,
		roads:    roads,
		grids:    grids,
		saved:    saved,
		sessions: make(map[string]*MapSession),
	}
}

// CreateMap validates the play area, fetches roads and elevation, and
// builds a new session.
func (ms *MapService) CreateMap(ctx context.Context, req models.CreateMapRequest) (*MapSession, error) {
	if len(req.Polygon) < 3 {
		return nil, fmt.Errorf("play area polygon needs at least 3 vertices, got %d", len(req.Polygon))
	}

	area := geometry.PolygonAreaSquareMeters(req.Polygon)
	if area < ms.cfg.MinAreaSqMeters {
		return nil, fmt.Errorf("play area %.0f sq meters is below the minimum %.0f", area, ms.cfg.MinAreaSqMeters)
	}
	if area > ms.cfg.MaxAreaSqMeters {
		return nil, fmt.Errorf("play area %.0f sq meters exceeds the maximum %.0f", area, ms.cfg.MaxAreaSqMeters)
	}
	if !geometry.PointInPolygon(req.Target, req.Polygon) {
		return nil, fmt.Errorf("target must be inside the play area")
	}

	started := time.Now()
	bounds := geometry.ComputeBoundingBox(req.Polygon)

	segments, err := ms.roads.FetchRoads(ctx, bounds)
	if err != nil {
		metrics.RoadFetchFailuresTotal.Inc()
		return nil, fmt.Errorf("failed to fetch road data: %w", err)
	}

	grid := ms.grids.FetchGrid(ctx, bounds, ms.cfg.ElevationRows, ms.cfg.ElevationCols)

	session := &MapSession{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Polygon: req.Polygon,
		Target:  req.Target,
		Area:    area,
		network: roadnetwork.New(segments),
		grid:    grid,
	}

	ms.mu.Lock()
	ms.sessions[session.ID] = session
	ms.mu.Unlock()

	metrics.MapsBuiltTotal.Inc()
	metrics.MapBuildDurationMs.Observe(float64(time.Since(started).Milliseconds()))
	log.Printf("Built map %s: %d road segments, %d graph nodes, %.0f sq meters",
		session.ID, len(segments), session.network.NodeCount(), area)

	return session, nil
}

// Session looks up a live map by id.
func (ms *MapService) Session(id string) (*MapSession, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	session, ok := ms.sessions[id]
	if !ok {
		return nil, ErrMapNotFound
	}
	return session, nil
}

// SaveMap persists a session's configuration and returns the saved id.
func (ms *MapService) SaveMap(sessionID string) (string, error) {
	session, err := ms.Session(sessionID)
	if err != nil {
		return "", err
	}
	return ms.saved.Save(models.MapConfig{
		Name:    session.Name,
		Polygon: session.Polygon,
		Target:  session.Target,
	})
}

// ListSaved returns all persisted map configurations.
func (ms *MapService) ListSaved() ([]store.SavedMap, error) {
	return ms.saved.List()
}

// GetSaved returns one persisted map configuration.
func (ms *MapService) GetSaved(savedID string) (*store.SavedMap, error) {
	return ms.saved.Get(savedID)
}

// LoadSaved rebuilds a live session from a persisted configuration.
// Road and elevation data are fetched fresh; only the polygon and
// target are stored.
func (ms *MapService) LoadSaved(ctx context.Context, savedID string) (*MapSession, error) {
	saved, err := ms.saved.Get(savedID)
	if err != nil {
		return nil, err
	}
	return ms.CreateMap(ctx, models.CreateMapRequest{
		Name:    saved.Config.Name,
		Polygon: saved.Config.Polygon,
		Target:  saved.Config.Target,
	})
}

// Roads returns the full (untrimmed) road geometry.
func (s *MapSession) Roads() []models.RoadSegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.network.GetAllRoads()
}

// NodeCount reports the number of routable graph nodes.
func (s *MapSession) NodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.network.NodeCount()
}

// FindPath routes between two points, nil when unreachable.
func (s *MapSession) FindPath(start, end models.Location) []models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.PathQueriesTotal.Inc()
	started := time.Now()
	path := s.network.FindPath(start, end)
	metrics.DijkstraDurationMs.Observe(float64(time.Since(started).Milliseconds()))

	if path == nil {
		metrics.PathsNotFoundTotal.Inc()
	}
	return path
}

// BoundaryEntries recomputes (and caches) where roads enter the play
// area, with each entry's path to the target.
func (s *MapSession) BoundaryEntries() ([]models.BoundaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshEntries()
}

// refreshEntries must be called with the session lock held.
func (s *MapSession) refreshEntries() ([]models.BoundaryEntry, error) {
	entries, err := s.network.FindBoundaryEntries(s.Target, s.Polygon)
	if err != nil {
		return nil, err
	}
	metrics.BoundaryEntriesFound.Observe(float64(len(entries)))
	s.entries = entries
	return entries, nil
}

// SimulateDemolition dry-runs a demolition against the current
// boundary entries without touching the graph.
func (s *MapSession) SimulateDemolition(center models.Location, radiusMeters float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.DemolitionSimulationsTotal.Inc()

	if s.entries == nil {
		if _, err := s.refreshEntries(); err != nil {
			return false, err
		}
	}
	return s.network.SimulateNodeRemoval(center, radiusMeters, s.Target, s.entries), nil
}

// Demolish commits a demolition and invalidates the cached entries.
func (s *MapSession) Demolish(center models.Location, radiusMeters float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.DemolitionsTotal.Inc()
	removed := s.network.RemoveRoadsInRadius(center, radiusMeters)
	s.entries = nil // stale now
	return removed
}

// PointOnRoad tests whether a point lies within toleranceMeters of any
// road; 0 uses the network default.
func (s *MapSession) PointOnRoad(point models.Location, toleranceMeters float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.network.IsPointOnRoad(point, toleranceMeters)
}

// Elevation samples the terrain height at a point.
func (s *MapSession) Elevation(point models.Location) float64 {
	return s.grid.GetElevation(point.Latitude, point.Longitude)
}

// LineOfSight checks terrain visibility between two offset points.
func (s *MapSession) LineOfSight(req models.LineOfSightRequest) bool {
	return s.grid.CheckLineOfSight(req.From, req.To, req.FromHeight, req.ToHeight)
}

// Visibility computes the terrain-limited visibility polygon.
func (s *MapSession) Visibility(req models.VisibilityRequest, cfg elevation.RangeConfig) []models.Location {
	metrics.VisibilityPolygonsTotal.Inc()

	numRays := req.NumRays
	if numRays == 0 {
		numRays = 72
	}
	maxSteps := req.MaxStepsPerRay
	if maxSteps == 0 {
		maxSteps = 100
	}
	return s.grid.CalculateVisibilityPolygon(req.Center, req.BaseRange, numRays, maxSteps, cfg)
}
