package models

type CreateMapRequest struct {
	Name    string     `json:"name,omitempty"`
	Polygon []Location `json:"polygon" binding:"required"`
	Target  Location   `json:"target" binding:"required"`
}

type PathRequest struct {
	Start Location `json:"start" binding:"required"`
	End   Location `json:"end" binding:"required"`
}

type PointRequest struct {
	Point Location `json:"point" binding:"required"`
}

type DemolitionRequest struct {
	Center       Location `json:"center" binding:"required"`
	RadiusMeters float64  `json:"radius_meters" binding:"required,min=1"`
}

type LineOfSightRequest struct {
	From       Location `json:"from" binding:"required"`
	To         Location `json:"to" binding:"required"`
	FromHeight float64  `json:"from_height,omitempty"`
	ToHeight   float64  `json:"to_height,omitempty"`
}

type VisibilityRequest struct {
	Center         Location `json:"center" binding:"required"`
	BaseRange      float64  `json:"base_range_meters" binding:"required,min=1"`
	NumRays        int      `json:"num_rays,omitempty"`
	MaxStepsPerRay int      `json:"max_steps_per_ray,omitempty"`
}
