package routing

import (
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// CheckConnectivity reports whether any of the start points can still
// reach the end point while treating ignoredNodeIDs as removed. Each
// point resolves to its nearest non-ignored node, then one BFS from the
// end node visits everything reachable. Used to pre-validate a
// demolition without committing it.
func (g *Graph) CheckConnectivity(startPoints []models.Location, endPoint models.Location, ignoredNodeIDs map[int64]bool) bool {
	if len(startPoints) == 0 {
		return false
	}

	endID, ok := g.FindClosestNodeExcluding(endPoint, ignoredNodeIDs)
	if !ok {
		return false
	}

	startIDs := make(map[int64]bool)
	for _, p := range startPoints {
		if id, ok := g.FindClosestNodeExcluding(p, ignoredNodeIDs); ok {
			startIDs[id] = true
		}
	}
	if len(startIDs) == 0 {
		return false
	}

	visited := map[int64]bool{endID: true}
	queue := []int64{endID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if startIDs[current] {
			return true
		}

		node, ok := g.Nodes[current]
		if !ok {
			continue
		}
		for neighborID := range node.Neighbors {
			if visited[neighborID] || ignoredNodeIDs[neighborID] {
				continue
			}
			visited[neighborID] = true
			queue = append(queue, neighborID)
		}
	}

	return false
}
