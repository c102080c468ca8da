package roadnetwork

import (
	"math"
	"testing"

	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// ~222m x 222m play area centred on the origin
var area = []models.Location{
	loc(-0.001, -0.001),
	loc(-0.001, 0.001),
	loc(0.001, 0.001),
	loc(0.001, -0.001),
}

// one road entering from the west to the centre, one leaving east
func entryNetwork() *RoadNetwork {
	return New([]models.RoadSegment{
		seg("west-in", []int64{10, 11}, []models.Location{loc(0, -0.0025), loc(0, 0)}),
		seg("east-out", []int64{11, 12}, []models.Location{loc(0, 0), loc(0, 0.0025)}),
	})
}

func TestFindBoundaryEntries(t *testing.T) {
	rn := entryNetwork()
	target := loc(0, 0)

	entries, err := rn.FindBoundaryEntries(target, area)
	if err != nil {
		t.Fatalf("FindBoundaryEntries: %v", err)
	}

	// west-in crosses outside->inside once; east-out only exits.
	// The east-out way read a->b goes inside->outside and must not
	// be reported as an entry.
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if math.Abs(entry.Position.Longitude-(-0.001)) > 1e-9 || math.Abs(entry.Position.Latitude) > 1e-9 {
		t.Errorf("entry position %+v, want west edge crossing (0, -0.001)", entry.Position)
	}
	if entry.Edge != models.EdgeWest {
		t.Errorf("entry edge = %s, want west", entry.Edge)
	}

	// path runs exact crossing -> graph nodes -> exact target
	if len(entry.Path) < 2 {
		t.Fatalf("path too short: %v", entry.Path)
	}
	if entry.Path[0] != entry.Position {
		t.Error("path must start at the exact crossing point")
	}
	if entry.Path[len(entry.Path)-1] != target {
		t.Error("path must end at the exact target point")
	}
}

func TestFindBoundaryEntriesPolygonContract(t *testing.T) {
	rn := entryNetwork()

	if _, err := rn.FindBoundaryEntries(loc(0, 0), area[:2]); err == nil {
		t.Error("polygon with fewer than 3 vertices must be rejected")
	}
}

func TestFindBoundaryEntriesStaleAfterDemolition(t *testing.T) {
	rn := entryNetwork()
	target := loc(0, 0)

	before, err := rn.FindBoundaryEntries(target, area)
	if err != nil || len(before) != 1 {
		t.Fatalf("setup: entries=%v err=%v", before, err)
	}

	// blow up the centre node; recomputed entries lose their route
	rn.RemoveRoadsInRadius(loc(0, 0), 20)

	after, err := rn.FindBoundaryEntries(target, area)
	if err != nil {
		t.Fatalf("FindBoundaryEntries after demolition: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("expected no routable entries after demolition, got %d", len(after))
	}
}
