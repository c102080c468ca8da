package routing

import (
	"math"

	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// Node is one street intersection or way vertex. Neighbors maps a
// neighbor's id to the edge length in meters; edges are symmetric, so
// if A lists B then B lists A with the same distance.
type Node struct {
	ID        int64
	Latitude  float64
	Longitude float64
	Neighbors map[int64]float64
}

// Graph is a weighted undirected graph of positioned nodes. Nodes and
// edges are created once at build time and only ever removed afterwards.
// The graph does no internal locking; callers serialize mutation
// against queries.
type Graph struct {
	Nodes map[int64]*Node
}

func NewGraph() *Graph {
	return &Graph{Nodes: make(map[int64]*Node)}
}

// BuildFromSegments inserts one node per distinct node id across all
// segments and one symmetric edge per consecutive position pair, with
// the great-circle distance as weight.
func BuildFromSegments(segments []models.RoadSegment) *Graph {
	g := NewGraph()

	for _, seg := range segments {
		for i, id := range seg.NodeIDs {
			if _, ok := g.Nodes[id]; !ok {
				g.Nodes[id] = &Node{
					ID:        id,
					Latitude:  seg.Positions[i].Latitude,
					Longitude: seg.Positions[i].Longitude,
					Neighbors: make(map[int64]float64),
				}
			}
		}

		for i := 0; i+1 < len(seg.NodeIDs); i++ {
			a := seg.NodeIDs[i]
			b := seg.NodeIDs[i+1]
			dist := geometry.DistanceMeters(seg.Positions[i], seg.Positions[i+1])
			g.Nodes[a].Neighbors[b] = dist
			g.Nodes[b].Neighbors[a] = dist
		}
	}

	return g
}

// RemoveNode deletes a node and the back-reference from every neighbor,
// leaving no dangling edges. Removing an absent id is a no-op.
func (g *Graph) RemoveNode(id int64) {
	node, ok := g.Nodes[id]
	if !ok {
		return
	}
	for neighborID := range node.Neighbors {
		if neighbor, ok := g.Nodes[neighborID]; ok {
			delete(neighbor.Neighbors, id)
		}
	}
	delete(g.Nodes, id)
}

// FindClosestNode returns the node nearest to the point by squared
// planar distance. Linear scan; fine at city-scale map sizes.
func (g *Graph) FindClosestNode(point models.Location) (int64, bool) {
	return g.FindClosestNodeExcluding(point, nil)
}

// FindClosestNodeExcluding is FindClosestNode skipping the given ids.
func (g *Graph) FindClosestNodeExcluding(point models.Location, excluded map[int64]bool) (int64, bool) {
	var nearest int64
	minDistSq := math.Inf(1)
	found := false

	for id, node := range g.Nodes {
		if excluded[id] {
			continue
		}
		dLat := node.Latitude - point.Latitude
		dLng := node.Longitude - point.Longitude
		distSq := dLat*dLat + dLng*dLng
		if distSq < minDistSq {
			minDistSq = distSq
			nearest = id
			found = true
		}
	}

	return nearest, found
}

// NodesInRadius returns the ids of all nodes within radiusMeters of the
// center, using a flat-earth degree conversion. Accurate at city scale.
func (g *Graph) NodesInRadius(center models.Location, radiusMeters float64) []int64 {
	degRadius := radiusMeters / geometry.MetersPerDegreeLat
	lngScale := math.Cos(center.Latitude * math.Pi / 180)

	var ids []int64
	for id, node := range g.Nodes {
		dLat := node.Latitude - center.Latitude
		dLng := (node.Longitude - center.Longitude) * lngScale
		if dLat*dLat+dLng*dLng <= degRadius*degRadius {
			ids = append(ids, id)
		}
	}
	return ids
}

// Position returns a node's location.
func (g *Graph) Position(id int64) (models.Location, bool) {
	node, ok := g.Nodes[id]
	if !ok {
		return models.Location{}, false
	}
	return models.Location{Latitude: node.Latitude, Longitude: node.Longitude}, true
}
