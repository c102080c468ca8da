package elevation

import (
	"math"

	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// losSampleSpacingMeters is the approximate distance between line of
// sight samples along the ray.
const losSampleSpacingMeters = 10.0

// rangeHeadroom is how far beyond the base range each visibility ray
// scans, leaving room for the maximum elevation range bonus.
const rangeHeadroom = 1.5

// RangeConfig tunes how elevation difference modulates effective range.
// Bonus grows linearly per meter of height advantage and the resulting
// factor is clamped to [MinFactor, MaxFactor].
type RangeConfig struct {
	BonusPerMeter float64
	MinFactor     float64
	MaxFactor     float64
}

// DefaultRangeConfig matches the headroom the visibility scan allows.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		BonusPerMeter: 0.005,
		MinFactor:     0.7,
		MaxFactor:     1.5,
	}
}

// EffectiveRange scales baseRange by the elevation advantage of the
// source over the target (elevDiff = source ground - target ground),
// clamped to the configured factors. Monotonic non-decreasing in
// elevDiff.
func (c RangeConfig) EffectiveRange(baseRange, elevDiff float64) float64 {
	factor := 1 + elevDiff*c.BonusPerMeter
	if factor < c.MinFactor {
		factor = c.MinFactor
	}
	if factor > c.MaxFactor {
		factor = c.MaxFactor
	}
	return baseRange * factor
}

// CheckLineOfSight reports whether p1 can see p2 over the terrain. Each
// endpoint height is its ground elevation plus the given offset above
// ground; the ray's height at every sample is the linear interpolation
// between the endpoint heights. Sight is blocked at the first sample
// where the ground rises above the ray.
func (g *Grid) CheckLineOfSight(p1, p2 models.Location, h1Offset, h2Offset float64) bool {
	dist := geometry.DistanceMeters(p1, p2)

	steps := int(dist / losSampleSpacingMeters)
	if steps < 1 {
		steps = 1
	}

	h1 := g.GetElevation(p1.Latitude, p1.Longitude) + h1Offset
	h2 := g.GetElevation(p2.Latitude, p2.Longitude) + h2Offset

	dLat := p2.Latitude - p1.Latitude
	dLng := p2.Longitude - p1.Longitude

	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)

		lat := p1.Latitude + dLat*t
		lng := p1.Longitude + dLng*t

		ground := g.GetElevation(lat, lng)
		rayHeight := h1 + (h2-h1)*t

		if ground > rayHeight {
			return false
		}
	}

	return true
}

// CalculateVisibilityPolygon casts numRays evenly spaced rays from
// center and returns one polygon vertex per ray: where the ray was cut
// short by terrain occlusion or by the locally effective range, or the
// full scan endpoint if nothing blocked it.
//
// Occlusion uses horizon tracking: walking outward, a sample only stays
// visible while its slope from the origin meets or exceeds the maximum
// slope seen so far. The result may be non-convex.
func (g *Grid) CalculateVisibilityPolygon(center models.Location, baseRange float64, numRays, maxStepsPerRay int, cfg RangeConfig) []models.Location {
	if numRays < 3 {
		numRays = 3
	}
	if maxStepsPerRay < 1 {
		maxStepsPerRay = 1
	}

	sourceElev := g.GetElevation(center.Latitude, center.Longitude)
	maxScan := baseRange * rangeHeadroom
	stepLen := maxScan / float64(maxStepsPerRay)

	polygon := make([]models.Location, 0, numRays)

	for r := 0; r < numRays; r++ {
		theta := 2 * math.Pi * float64(r) / float64(numRays)
		north := math.Cos(theta)
		east := math.Sin(theta)

		vertex := center
		maxSlope := math.Inf(-1)

		for i := 1; i <= maxStepsPerRay; i++ {
			d := stepLen * float64(i)
			sample := geometry.Offset(center, north*d, east*d)
			sampleElev := g.GetElevation(sample.Latitude, sample.Longitude)

			effRange := cfg.EffectiveRange(baseRange, sourceElev-sampleElev)
			if d > effRange {
				// the ray ends exactly at the locally effective range
				vertex = geometry.Offset(center, north*effRange, east*effRange)
				break
			}

			slope := (sampleElev - sourceElev) / d
			if slope < maxSlope {
				// below the horizon: keep the last visible sample
				break
			}
			maxSlope = slope
			vertex = sample
		}

		polygon = append(polygon, vertex)
	}

	return polygon
}
