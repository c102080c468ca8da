package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bicyclespokesperson/MapsTD-sub000/config"
	"github.com/bicyclespokesperson/MapsTD-sub000/elevation"
	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
	"github.com/bicyclespokesperson/MapsTD-sub000/store"
)

func loc(lat, lng float64) models.Location {
	return models.Location{Latitude: lat, Longitude: lng}
}

// fakeRoads serves a fixed road set without touching Overpass.
type fakeRoads struct {
	segments []models.RoadSegment
	err      error
}

func (f fakeRoads) FetchRoads(_ context.Context, _ geometry.BoundingBox) ([]models.RoadSegment, error) {
	return f.segments, f.err
}

// fakeGrids always serves flat terrain.
type fakeGrids struct{}

func (fakeGrids) FetchGrid(_ context.Context, bounds geometry.BoundingBox, rows, cols int) *elevation.Grid {
	return elevation.NewFlatGrid(bounds, rows, cols)
}

// a ~550m square play area around the origin with the small road
// square from the demolition scenario inside it.
var (
	testPolygon = []models.Location{
		loc(0.0025, -0.0025), loc(0.0025, 0.0025),
		loc(-0.0025, 0.0025), loc(-0.0025, -0.0025),
	}
	testTarget = loc(0, 0)
)

func testSegments() []models.RoadSegment {
	return []models.RoadSegment{
		{ID: "top", NodeIDs: []int64{1, 2, 3}, Positions: []models.Location{loc(0, 0), loc(0, 0.0009), loc(0, 0.0018)}, RoadClass: models.Residential},
		{ID: "side", NodeIDs: []int64{1, 4, 5}, Positions: []models.Location{loc(0, 0), loc(-0.0009, 0), loc(-0.0009, 0.0009)}, RoadClass: models.Residential},
		{ID: "link", NodeIDs: []int64{2, 5}, Positions: []models.Location{loc(0, 0.0009), loc(-0.0009, 0.0009)}, RoadClass: models.Residential},
		// enters across the west edge so the map has a boundary entry
		{ID: "west-in", NodeIDs: []int64{10, 1}, Positions: []models.Location{loc(0, -0.004), loc(0, 0)}, RoadClass: models.Residential},
	}
}

func newTestService(t *testing.T, roads RoadFetcher) *MapService {
	t.Helper()
	saved, err := store.NewMapStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { saved.Close() })

	cfg := config.Config{
		MinAreaSqMeters: 1_000,
		MaxAreaSqMeters: 10_000_000,
		ElevationRows:   4,
		ElevationCols:   4,
		Visibility:      elevation.DefaultRangeConfig(),
	}
	return NewMapService(cfg, roads, fakeGrids{}, saved)
}

func TestCreateMapValidation(t *testing.T) {
	ms := newTestService(t, fakeRoads{segments: testSegments()})
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateMapRequest
	}{
		{"too few vertices", models.CreateMapRequest{
			Polygon: testPolygon[:2], Target: testTarget,
		}},
		{"target outside polygon", models.CreateMapRequest{
			Polygon: testPolygon, Target: loc(0.01, 0.01),
		}},
		{"area below minimum", models.CreateMapRequest{
			Polygon: []models.Location{
				loc(0.0001, -0.0001), loc(0.0001, 0.0001),
				loc(-0.0001, 0.0001), loc(-0.0001, -0.0001),
			},
			Target: testTarget,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ms.CreateMap(ctx, tc.req); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}
}

func TestCreateMapRoadFetchFailure(t *testing.T) {
	ms := newTestService(t, fakeRoads{err: errors.New("overpass timeout")})

	_, err := ms.CreateMap(context.Background(), models.CreateMapRequest{
		Polygon: testPolygon, Target: testTarget,
	})
	if err == nil {
		t.Fatal("expected map creation to fail when road data is unavailable")
	}
}

func TestCreateMapAndQuery(t *testing.T) {
	ms := newTestService(t, fakeRoads{segments: testSegments()})

	session, err := ms.CreateMap(context.Background(), models.CreateMapRequest{
		Name: "origin square", Polygon: testPolygon, Target: testTarget,
	})
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}
	if session.NodeCount() != 6 {
		t.Errorf("expected 6 graph nodes, got %d", session.NodeCount())
	}

	got, err := ms.Session(session.ID)
	if err != nil || got != session {
		t.Fatalf("session lookup returned (%v, %v)", got, err)
	}
	if _, err := ms.Session("no-such-id"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("expected ErrMapNotFound, got %v", err)
	}

	if path := session.FindPath(loc(0, 0), loc(0, 0.0018)); len(path) != 3 {
		t.Errorf("expected a 3-node path along the top road, got %v", path)
	}
	if !session.PointOnRoad(loc(0, 0.0004), 0) {
		t.Error("midpoint of the top road should be on a road")
	}
	if session.PointOnRoad(loc(0.002, 0.002), 0) {
		t.Error("open ground should not be on a road")
	}
	if elev := session.Elevation(testTarget); elev != 0 {
		t.Errorf("flat grid should read 0, got %f", elev)
	}
}

func TestDemolitionFlow(t *testing.T) {
	ms := newTestService(t, fakeRoads{segments: testSegments()})

	session, err := ms.CreateMap(context.Background(), models.CreateMapRequest{
		Polygon: testPolygon, Target: loc(-0.0009, 0.0009),
	})
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}

	// with both routes intact, losing node 2 keeps node 1 connected
	connected, err := session.SimulateDemolition(loc(0, 0.0009), 20)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if !connected {
		t.Error("side route should keep the map connected in simulation")
	}
	if session.NodeCount() != 6 {
		t.Errorf("simulation must not mutate the graph, node count %d", session.NodeCount())
	}

	if removed := session.Demolish(loc(0, 0.0009), 20); removed != 1 {
		t.Errorf("expected 1 removed node, got %d", removed)
	}

	// after committing, a second strike on node 4 cuts the last route
	connected, err = session.SimulateDemolition(loc(-0.0009, 0), 20)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if connected {
		t.Error("removing node 4 after node 2 should disconnect the target")
	}
}

func TestSaveAndLoad(t *testing.T) {
	ms := newTestService(t, fakeRoads{segments: testSegments()})
	ctx := context.Background()

	session, err := ms.CreateMap(ctx, models.CreateMapRequest{
		Name: "keeper", Polygon: testPolygon, Target: testTarget,
	})
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}

	savedID, err := ms.SaveMap(session.ID)
	if err != nil {
		t.Fatalf("failed to save map: %v", err)
	}
	if _, err := ms.SaveMap("no-such-id"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("expected ErrMapNotFound, got %v", err)
	}

	saved, err := ms.ListSaved()
	if err != nil || len(saved) != 1 {
		t.Fatalf("expected 1 saved map, got %d (err %v)", len(saved), err)
	}
	if saved[0].Name != "keeper" {
		t.Errorf("saved name = %q, want keeper", saved[0].Name)
	}

	loaded, err := ms.LoadSaved(ctx, savedID)
	if err != nil {
		t.Fatalf("failed to load saved map: %v", err)
	}
	if loaded.ID == session.ID {
		t.Error("loading must build a fresh session with its own id")
	}
	if loaded.Target != testTarget || len(loaded.Polygon) != len(testPolygon) {
		t.Error("loaded session should carry the saved polygon and target")
	}
}
