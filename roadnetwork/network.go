package roadnetwork

import (
	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
	"github.com/bicyclespokesperson/MapsTD-sub000/routing"
)

// DefaultRoadToleranceMeters is how close a point must be to a segment
// for IsPointOnRoad.
const DefaultRoadToleranceMeters = 20.0

// RoadNetwork composes the routing graph with the raw road geometry it
// was built from. Graph mutation (demolition) removes nodes but leaves
// the segment polylines in place; destroyed segments are flagged instead
// so rendering clients can tell them apart.
//
// Boundary entries computed by FindBoundaryEntries go stale whenever the
// graph mutates or the target moves; callers recompute them wholesale.
// No internal locking: callers serialize mutation against queries.
type RoadNetwork struct {
	graph    *routing.Graph
	segments []models.RoadSegment
}

func New(segments []models.RoadSegment) *RoadNetwork {
	return &RoadNetwork{
		graph:    routing.BuildFromSegments(segments),
		segments: segments,
	}
}

// GetAllRoads returns the original segment geometry, untrimmed by any
// graph mutation.
func (rn *RoadNetwork) GetAllRoads() []models.RoadSegment {
	return rn.segments
}

// NodeCount reports the current routable node count.
func (rn *RoadNetwork) NodeCount() int {
	return len(rn.graph.Nodes)
}

// FindPath routes between the nodes nearest to start and end and
// returns the waypoint positions, or nil when no route exists.
func (rn *RoadNetwork) FindPath(start, end models.Location) []models.Location {
	startID, ok := rn.graph.FindClosestNode(start)
	if !ok {
		return nil
	}
	endID, ok := rn.graph.FindClosestNode(end)
	if !ok {
		return nil
	}

	ids := rn.graph.FindShortestPath(startID, endID)
	if ids == nil {
		return nil
	}

	path := make([]models.Location, 0, len(ids))
	for _, id := range ids {
		if pos, ok := rn.graph.Position(id); ok {
			path = append(path, pos)
		}
	}
	return path
}

// IsPointOnRoad reports whether the point lies within toleranceMeters
// of any road segment. Pass 0 for the default tolerance.
func (rn *RoadNetwork) IsPointOnRoad(point models.Location, toleranceMeters float64) bool {
	if toleranceMeters <= 0 {
		toleranceMeters = DefaultRoadToleranceMeters
	}

	for _, seg := range rn.segments {
		for i := 0; i+1 < len(seg.Positions); i++ {
			d := geometry.DistanceToSegmentMeters(point, seg.Positions[i], seg.Positions[i+1])
			if d <= toleranceMeters {
				return true
			}
		}
	}
	return false
}

// SimulateNodeRemoval is the dry run for a demolition: it computes the
// node set a removal at center/radius would delete and checks whether
// any current boundary entry could still reach the target, without
// mutating the graph.
func (rn *RoadNetwork) SimulateNodeRemoval(center models.Location, radiusMeters float64, target models.Location, currentEntries []models.BoundaryEntry) bool {
	candidates := rn.graph.NodesInRadius(center, radiusMeters)

	ignored := make(map[int64]bool, len(candidates))
	for _, id := range candidates {
		ignored[id] = true
	}

	starts := make([]models.Location, 0, len(currentEntries))
	for _, entry := range currentEntries {
		starts = append(starts, entry.Position)
	}

	return rn.graph.CheckConnectivity(starts, target, ignored)
}

// RemoveRoadsInRadius commits a demolition: every node within the
// radius is removed from the graph, and segments that lost a node are
// flagged destroyed. Returns the number of removed nodes. There is no
// safety net here; callers wanting one run SimulateNodeRemoval first.
func (rn *RoadNetwork) RemoveRoadsInRadius(center models.Location, radiusMeters float64) int {
	removed := rn.graph.NodesInRadius(center, radiusMeters)

	removedSet := make(map[int64]bool, len(removed))
	for _, id := range removed {
		rn.graph.RemoveNode(id)
		removedSet[id] = true
	}

	for i := range rn.segments {
		if rn.segments[i].Destroyed {
			continue
		}
		for _, id := range rn.segments[i].NodeIDs {
			if removedSet[id] {
				rn.segments[i].Destroyed = true
				break
			}
		}
	}

	return len(removed)
}
