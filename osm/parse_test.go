package osm

import (
	"testing"
)

const sampleResponse = `{
  "elements": [
    {"type": "node", "id": 101, "lat": 45.500, "lon": -73.560},
    {"type": "node", "id": 102, "lat": 45.501, "lon": -73.561},
    {"type": "node", "id": 103, "lat": 45.502, "lon": -73.562},
    {"type": "way", "id": 9001, "nodes": [101, 102, 103],
     "tags": {"highway": "residential", "name": "Rue Example"}},
    {"type": "way", "id": 9002, "nodes": [102, 999],
     "tags": {"highway": "service"}},
    {"type": "way", "id": 9003, "nodes": [999, 998],
     "tags": {"highway": "residential"}}
  ]
}`

func TestParseOverpassResponse(t *testing.T) {
	segments, err := ParseOverpassResponse([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// way 9002 loses its unknown node and becomes unroutable,
	// way 9003 references only unknown nodes
	if len(segments) != 1 {
		t.Fatalf("expected 1 usable segment, got %d", len(segments))
	}

	road := segments[0]
	if road.ID != "9001" {
		t.Errorf("segment id = %s, want 9001", road.ID)
	}
	if len(road.Positions) != 3 || len(road.NodeIDs) != 3 {
		t.Fatalf("positions/ids length = %d/%d, want 3/3", len(road.Positions), len(road.NodeIDs))
	}
	if road.NodeIDs[1] != 102 {
		t.Errorf("node ids not aligned: %v", road.NodeIDs)
	}
	if road.Positions[0].Latitude != 45.5 {
		t.Errorf("position 0 latitude = %f", road.Positions[0].Latitude)
	}
	if road.RoadClass != "residential" {
		t.Errorf("road class = %s", road.RoadClass)
	}
	if road.Tags["name"] != "Rue Example" {
		t.Errorf("tags not preserved: %v", road.Tags)
	}
}

func TestParseOverpassResponseEmpty(t *testing.T) {
	if _, err := ParseOverpassResponse([]byte(`{"elements": []}`)); err == nil {
		t.Error("empty response should be an error")
	}
	if _, err := ParseOverpassResponse([]byte(`not json`)); err == nil {
		t.Error("malformed response should be an error")
	}
}
