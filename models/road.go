package models

// RoadClass mirrors the OSM "highway" tag value for a way.
type RoadClass string

const (
	Motorway    RoadClass = "motorway"
	Trunk       RoadClass = "trunk"
	Primary     RoadClass = "primary"
	Secondary   RoadClass = "secondary"
	Tertiary    RoadClass = "tertiary"
	Residential RoadClass = "residential"
	Unclassifed RoadClass = "unclassified"
	Service     RoadClass = "service"
)

// RoadSegment is one OSM way: an ordered polyline with the graph node id
// for each vertex. Positions and NodeIDs are index-aligned and the same
// length; consecutive positions correspond to one graph edge.
type RoadSegment struct {
	ID        string            `json:"id"`
	Positions []Location        `json:"positions"`
	NodeIDs   []int64           `json:"node_ids"`
	RoadClass RoadClass         `json:"road_class"`
	Tags      map[string]string `json:"tags,omitempty"`

	// Destroyed is set when a demolition removed this segment's graph
	// nodes. The polyline itself is kept so clients can still draw the
	// (now unroutable) road.
	Destroyed bool `json:"destroyed,omitempty"`
}

// CompassEdge is a coarse label for which side of the play area an entry
// point sits on.
type CompassEdge string

const (
	EdgeNorth CompassEdge = "north"
	EdgeEast  CompassEdge = "east"
	EdgeSouth CompassEdge = "south"
	EdgeWest  CompassEdge = "west"
)

// BoundaryEntry is a point where a road crosses from outside the play
// area to inside, together with the precomputed waypoint path from that
// crossing to the defended target. Entries go stale whenever the graph
// mutates or the target changes and must be recomputed wholesale.
type BoundaryEntry struct {
	Position Location    `json:"position"`
	Path     []Location  `json:"path"`
	Edge     CompassEdge `json:"edge"`
}
