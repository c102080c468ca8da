package routing

import (
	"testing"

	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

func loc(lat, lng float64) models.Location {
	return models.Location{Latitude: lat, Longitude: lng}
}

// seg builds a RoadSegment from alternating node ids and positions.
func seg(id string, ids []int64, positions []models.Location) models.RoadSegment {
	return models.RoadSegment{ID: id, NodeIDs: ids, Positions: positions, RoadClass: models.Residential}
}

// a line of three nodes ~100m apart along the equator
func lineGraph() *Graph {
	return BuildFromSegments([]models.RoadSegment{
		seg("w1", []int64{1, 2, 3}, []models.Location{
			loc(0, 0), loc(0, 0.0009), loc(0, 0.0018),
		}),
	})
}

func TestBuildFromSegmentsSymmetricEdges(t *testing.T) {
	g := lineGraph()

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}

	d12, ok := g.Nodes[1].Neighbors[2]
	if !ok {
		t.Fatal("edge 1->2 missing")
	}
	d21, ok := g.Nodes[2].Neighbors[1]
	if !ok {
		t.Fatal("edge 2->1 missing")
	}
	if d12 != d21 {
		t.Errorf("asymmetric edge weights: %f vs %f", d12, d21)
	}
	if d12 < 90 || d12 > 110 {
		t.Errorf("edge weight %f m, want ~100", d12)
	}

	if _, ok := g.Nodes[1].Neighbors[3]; ok {
		t.Error("non-consecutive nodes must not be connected")
	}
}

func TestBuildFromSegmentsSharedNodes(t *testing.T) {
	// two ways sharing node 2 at a true intersection
	g := BuildFromSegments([]models.RoadSegment{
		seg("w1", []int64{1, 2}, []models.Location{loc(0, 0), loc(0, 0.0009)}),
		seg("w2", []int64{2, 3}, []models.Location{loc(0, 0.0009), loc(0.0009, 0.0009)}),
	})

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Nodes[2].Neighbors) != 2 {
		t.Errorf("intersection node should have 2 neighbors, got %d", len(g.Nodes[2].Neighbors))
	}
}

func TestRemoveNode(t *testing.T) {
	g := lineGraph()

	g.RemoveNode(2)

	if _, ok := g.Nodes[2]; ok {
		t.Fatal("node 2 still present")
	}
	if _, ok := g.Nodes[1].Neighbors[2]; ok {
		t.Error("dangling edge 1->2 left behind")
	}
	if _, ok := g.Nodes[3].Neighbors[2]; ok {
		t.Error("dangling edge 3->2 left behind")
	}
}

func TestRemoveNodeIdempotent(t *testing.T) {
	g := lineGraph()

	g.RemoveNode(2)
	g.RemoveNode(2)
	g.RemoveNode(99)

	if len(g.Nodes) != 2 {
		t.Errorf("expected 2 nodes after repeated removal, got %d", len(g.Nodes))
	}
}

func TestFindClosestNode(t *testing.T) {
	g := lineGraph()

	id, ok := g.FindClosestNode(loc(0.0001, 0.001))
	if !ok || id != 2 {
		t.Errorf("closest node = %d (ok=%v), want 2", id, ok)
	}

	id, ok = g.FindClosestNodeExcluding(loc(0.0001, 0.001), map[int64]bool{2: true})
	if !ok || id != 3 {
		t.Errorf("closest non-excluded node = %d (ok=%v), want 3", id, ok)
	}

	empty := NewGraph()
	if _, ok := empty.FindClosestNode(loc(0, 0)); ok {
		t.Error("empty graph must report no closest node")
	}
}

func TestNodesInRadius(t *testing.T) {
	g := lineGraph()

	ids := g.NodesInRadius(loc(0, 0.0009), 20)
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("20m radius should catch only node 2, got %v", ids)
	}

	ids = g.NodesInRadius(loc(0, 0.0009), 150)
	if len(ids) != 3 {
		t.Errorf("150m radius should catch all 3 nodes, got %v", ids)
	}
}
