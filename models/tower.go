package models

// TowerKind discriminates tower config variants.
type TowerKind string

const (
	Cannon     TowerKind = "cannon"
	MachineGun TowerKind = "machine_gun"
	Sniper     TowerKind = "sniper"
	Helicopter TowerKind = "helicopter"
	Bomb       TowerKind = "bomb"
)

// TowerStats are the base stats shared by every tower kind.
type TowerStats struct {
	RangeMeters     float64 `json:"range_meters"`
	Damage          float64 `json:"damage"`
	CooldownSeconds float64 `json:"cooldown_seconds"`
	Cost            int     `json:"cost"`
}

// HelicopterConfig holds the fields only helicopters have.
type HelicopterConfig struct {
	PatrolRadiusMeters float64 `json:"patrol_radius_meters"`
	SpeedMetersPerSec  float64 `json:"speed_meters_per_sec"`
}

// BombConfig holds the fields only bombs have. A bomb is a one-shot
// demolition charge: it removes road nodes rather than attacking.
type BombConfig struct {
	FuseSeconds  float64 `json:"fuse_seconds"`
	BlastRadiusM float64 `json:"blast_radius_meters"`
}

// TowerConfig is a tagged union over TowerStats: exactly the variant
// matching Kind is non-nil.
type TowerConfig struct {
	Kind       TowerKind         `json:"kind"`
	Stats      TowerStats        `json:"stats"`
	Helicopter *HelicopterConfig `json:"helicopter,omitempty"`
	Bomb       *BombConfig       `json:"bomb,omitempty"`
}
