package roadnetwork

import (
	"fmt"
	"math"

	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
	"github.com/bicyclespokesperson/MapsTD-sub000/routing"
)

// FindBoundaryEntries finds every point where a road crosses from
// outside the area polygon to inside, paired with the graph path from
// that crossing to the target.
//
// One single-source Dijkstra pass from the target's nearest node serves
// every entry; per-entry work is just path reconstruction from the
// shared predecessor map. Each crossing is snapped to the closer of its
// two bounding road nodes for routing, then the exact intersection
// point is spliced back on the front and the exact target on the end.
func (rn *RoadNetwork) FindBoundaryEntries(target models.Location, areaPolygon []models.Location) ([]models.BoundaryEntry, error) {
	if len(areaPolygon) < 3 {
		return nil, fmt.Errorf("area polygon needs at least 3 vertices, got %d", len(areaPolygon))
	}

	targetID, ok := rn.graph.FindClosestNode(target)
	if !ok {
		return nil, nil
	}

	_, previous := rn.graph.ComputeShortestPathsFrom(targetID)

	var entries []models.BoundaryEntry

	for _, seg := range rn.segments {
		for i := 0; i+1 < len(seg.Positions); i++ {
			a := seg.Positions[i]
			b := seg.Positions[i+1]

			// entry means crossing outside -> inside; exits don't count
			if geometry.PointInPolygon(a, areaPolygon) || !geometry.PointInPolygon(b, areaPolygon) {
				continue
			}

			crossing, ok := geometry.LineSegmentPolygonIntersection(a, b, areaPolygon)
			if !ok {
				continue
			}

			// snap to whichever bounding node is closer to the crossing
			snapped := seg.NodeIDs[i]
			if geometry.DistanceMeters(crossing, b) < geometry.DistanceMeters(crossing, a) {
				snapped = seg.NodeIDs[i+1]
			}

			ids := routing.ReconstructPath(targetID, snapped, previous)
			if ids == nil {
				continue // crossing leads nowhere near the target
			}

			// walk node path from the entry toward the target, with the
			// exact crossing point in front and the exact target behind
			path := make([]models.Location, 0, len(ids)+2)
			path = append(path, crossing)
			for j := len(ids) - 1; j >= 0; j-- {
				if pos, ok := rn.graph.Position(ids[j]); ok {
					path = append(path, pos)
				}
			}
			path = append(path, target)

			entries = append(entries, models.BoundaryEntry{
				Position: crossing,
				Path:     path,
				Edge:     compassEdge(crossing, areaPolygon),
			})
		}
	}

	return entries, nil
}

// compassEdge labels which side of the area a point sits on, judged
// from the polygon centroid.
func compassEdge(point models.Location, polygon []models.Location) models.CompassEdge {
	var cLat, cLng float64
	for _, p := range polygon {
		cLat += p.Latitude
		cLng += p.Longitude
	}
	cLat /= float64(len(polygon))
	cLng /= float64(len(polygon))

	dLat := point.Latitude - cLat
	dLng := (point.Longitude - cLng) * math.Cos(cLat*math.Pi/180)

	angle := math.Atan2(dLng, dLat) // 0 = north, pi/2 = east
	switch {
	case angle >= -math.Pi/4 && angle < math.Pi/4:
		return models.EdgeNorth
	case angle >= math.Pi/4 && angle < 3*math.Pi/4:
		return models.EdgeEast
	case angle >= -3*math.Pi/4 && angle < -math.Pi/4:
		return models.EdgeWest
	default:
		return models.EdgeSouth
	}
}
