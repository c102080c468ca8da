package models

type MapResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Target       Location   `json:"target"`
	Polygon      []Location `json:"polygon"`
	AreaSqMeters float64    `json:"area_sq_meters"`
	NodeCount    int        `json:"node_count"`
	RoadCount    int        `json:"road_count"`
}

type RoadsResponse struct {
	Roads []RoadSegment `json:"roads"`
	Count int           `json:"count"`
}

type PathResponse struct {
	Path  []Location `json:"path"`
	Found bool       `json:"found"`
}

type BoundaryEntriesResponse struct {
	Entries []BoundaryEntry `json:"entries"`
	Count   int             `json:"count"`
}

type SimulateDemolitionResponse struct {
	Connected bool `json:"connected"`
}

type DemolitionResponse struct {
	RemovedNodes int `json:"removed_nodes"`
}

type ElevationResponse struct {
	Elevation float64 `json:"elevation_meters"`
}

type LineOfSightResponse struct {
	Visible bool `json:"visible"`
}

type VisibilityResponse struct {
	Polygon []Location `json:"polygon"`
}

// MapConfig is the versioned JSON payload persisted by the map store.
type MapConfig struct {
	Version int        `json:"version"`
	Name    string     `json:"name,omitempty"`
	Polygon []Location `json:"polygon"`
	Target  Location   `json:"target"`
	Towers  []TowerConfig `json:"towers,omitempty"`
}

// CurrentMapConfigVersion is bumped whenever MapConfig's shape changes.
const CurrentMapConfigVersion = 2
