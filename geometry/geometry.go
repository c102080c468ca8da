package geometry

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

const (
	// EarthRadiusMeters as used by the s2 library's unit sphere scaling.
	EarthRadiusMeters = 6371000.0

	// MetersPerDegreeLat is the flat-earth conversion used for
	// city-scale radius and tolerance math.
	MetersPerDegreeLat = 111320.0

	// intersectionEpsilon guards the parametric solver against
	// near-parallel segments.
	intersectionEpsilon = 1e-12
)

// BoundingBox is an axis-aligned lat/lng rectangle.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether p lies inside the box (inclusive).
func (b BoundingBox) Contains(p models.Location) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLng && p.Longitude <= b.MaxLng
}

// DistanceMeters returns the great-circle distance between two locations.
func DistanceMeters(a, b models.Location) float64 {
	la := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	lb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return la.Distance(lb).Radians() * EarthRadiusMeters
}

// PointInPolygon tests point containment with the ray casting parity
// algorithm. Works for convex and non-convex simple polygons. Points
// exactly on an edge may fall on either side.
func PointInPolygon(point models.Location, polygon []models.Location) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude

		if ((yi > point.Latitude) != (yj > point.Latitude)) &&
			(point.Longitude < (xj-xi)*(point.Latitude-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// LineSegmentIntersection solves the 2x2 parametric system for segments
// p1-p2 and p3-p4. The intersection is returned only when it falls
// within both segments; parallel and near-parallel segments report none.
func LineSegmentIntersection(p1, p2, p3, p4 models.Location) (models.Location, bool) {
	d1x := p2.Longitude - p1.Longitude
	d1y := p2.Latitude - p1.Latitude
	d2x := p4.Longitude - p3.Longitude
	d2y := p4.Latitude - p3.Latitude

	denom := d1x*d2y - d1y*d2x
	if math.Abs(denom) < intersectionEpsilon {
		return models.Location{}, false
	}

	dx := p3.Longitude - p1.Longitude
	dy := p3.Latitude - p1.Latitude

	t := (dx*d2y - dy*d2x) / denom
	u := (dx*d1y - dy*d1x) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return models.Location{}, false
	}

	return models.Location{
		Latitude:  p1.Latitude + t*d1y,
		Longitude: p1.Longitude + t*d1x,
	}, true
}

// LineSegmentPolygonIntersection scans every polygon edge and returns
// the boundary intersection closest to the segment's start point.
func LineSegmentPolygonIntersection(p1, p2 models.Location, polygon []models.Location) (models.Location, bool) {
	var best models.Location
	bestDist := math.Inf(1)
	found := false

	for i := 0; i < len(polygon); i++ {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]
		if pt, ok := LineSegmentIntersection(p1, p2, a, b); ok {
			d := DistanceMeters(p1, pt)
			if d < bestDist {
				bestDist = d
				best = pt
				found = true
			}
		}
	}

	return best, found
}

// PolygonAreaSquareMeters computes the shoelace area after projecting
// the corners into a local equirectangular meters frame centred on the
// polygon's mean latitude (longitude scaled by cos(latitude)).
func PolygonAreaSquareMeters(corners []models.Location) float64 {
	if len(corners) < 3 {
		return 0
	}

	meanLat := 0.0
	for _, c := range corners {
		meanLat += c.Latitude
	}
	meanLat /= float64(len(corners))
	lngScale := math.Cos(meanLat * math.Pi / 180)

	area := 0.0
	for i := 0; i < len(corners); i++ {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		ax := a.Longitude * lngScale * MetersPerDegreeLat
		ay := a.Latitude * MetersPerDegreeLat
		bx := b.Longitude * lngScale * MetersPerDegreeLat
		by := b.Latitude * MetersPerDegreeLat
		area += ax*by - bx*ay
	}

	return math.Abs(area) / 2
}

// ComputeBoundingBox returns the axis-aligned box around the corners.
func ComputeBoundingBox(corners []models.Location) BoundingBox {
	box := BoundingBox{
		MinLat: math.Inf(1),
		MinLng: math.Inf(1),
		MaxLat: math.Inf(-1),
		MaxLng: math.Inf(-1),
	}
	for _, c := range corners {
		box.MinLat = math.Min(box.MinLat, c.Latitude)
		box.MinLng = math.Min(box.MinLng, c.Longitude)
		box.MaxLat = math.Max(box.MaxLat, c.Latitude)
		box.MaxLng = math.Max(box.MaxLng, c.Longitude)
	}
	return box
}

// SortCornersClockwise orders exactly four corners clockwise around
// their centroid by angle.
func SortCornersClockwise(corners []models.Location) []models.Location {
	if len(corners) != 4 {
		return corners
	}

	var cLat, cLng float64
	for _, c := range corners {
		cLat += c.Latitude
		cLng += c.Longitude
	}
	cLat /= 4
	cLng /= 4

	sorted := make([]models.Location, 4)
	copy(sorted, corners)

	angle := func(p models.Location) float64 {
		return math.Atan2(p.Longitude-cLng, p.Latitude-cLat)
	}

	// four elements, insertion sort is plenty
	for i := 1; i < 4; i++ {
		for j := i; j > 0 && angle(sorted[j]) < angle(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	return sorted
}

// IsConvexQuadrilateral reports whether four corners (in order) form a
// convex quadrilateral: every consecutive cross product has the same sign.
func IsConvexQuadrilateral(corners []models.Location) bool {
	if len(corners) != 4 {
		return false
	}

	sign := 0
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		c := corners[(i+2)%4]

		cross := (b.Longitude-a.Longitude)*(c.Latitude-b.Latitude) -
			(b.Latitude-a.Latitude)*(c.Longitude-b.Longitude)

		if cross == 0 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}

	return true
}

// DistanceToSegmentMeters returns the distance from p to the segment
// a-b using the standard clamped projection, evaluated in a local
// equirectangular frame.
func DistanceToSegmentMeters(p, a, b models.Location) float64 {
	lngScale := math.Cos(p.Latitude * math.Pi / 180)

	px := p.Longitude * lngScale
	py := p.Latitude
	ax := a.Longitude * lngScale
	ay := a.Latitude
	bx := b.Longitude * lngScale
	by := b.Latitude

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	cx := ax + t*dx
	cy := ay + t*dy
	ddx := px - cx
	ddy := py - cy
	return math.Sqrt(ddx*ddx+ddy*ddy) * MetersPerDegreeLat
}

// Offset moves a location by the given meters north and east, flat-earth
// approximation.
func Offset(p models.Location, northMeters, eastMeters float64) models.Location {
	lat := p.Latitude + northMeters/MetersPerDegreeLat
	lng := p.Longitude + eastMeters/(MetersPerDegreeLat*math.Cos(lat*math.Pi/180))
	return models.Location{Latitude: lat, Longitude: lng}
}
