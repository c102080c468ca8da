package osm

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat,omitempty"`
	Lon   float64           `json:"lon,omitempty"`
	Nodes []int64           `json:"nodes,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
}

// ParseOverpassResponse turns an Overpass JSON payload into road
// segments. Node elements position each way vertex; node ids are kept
// as-is, so ways sharing an OSM node at a true intersection share a
// graph node. Ways referencing nodes missing from the payload drop
// those vertices.
func ParseOverpassResponse(data []byte) ([]models.RoadSegment, error) {
	var resp overpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	nodePos := make(map[int64]models.Location)
	for _, el := range resp.Elements {
		if el.Type == "node" {
			nodePos[el.ID] = models.Location{Latitude: el.Lat, Longitude: el.Lon}
		}
	}

	var segments []models.RoadSegment
	for _, el := range resp.Elements {
		if el.Type != "way" {
			continue
		}

		positions := make([]models.Location, 0, len(el.Nodes))
		ids := make([]int64, 0, len(el.Nodes))
		for _, nodeID := range el.Nodes {
			pos, ok := nodePos[nodeID]
			if !ok {
				continue
			}
			positions = append(positions, pos)
			ids = append(ids, nodeID)
		}
		if len(ids) < 2 {
			continue // nothing routable left
		}

		segments = append(segments, models.RoadSegment{
			ID:        strconv.FormatInt(el.ID, 10),
			Positions: positions,
			NodeIDs:   ids,
			RoadClass: models.RoadClass(el.Tags["highway"]),
			Tags:      el.Tags,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("overpass response contained no usable ways")
	}
	return segments, nil
}
