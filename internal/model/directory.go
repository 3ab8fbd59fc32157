package model

import (
	"github.com/google/uuid"
)

// City is a directory location companies register under.
type City struct {
	Base
	Name string `json:"name" db:"name"`
}

// Sector is a top-level service category (construction, design, ...).
type Sector struct {
	Base
	Name string `json:"name" db:"name"`
}

// Service is a concrete offering within a sector.
type Service struct {
	Base
	SectorID uuid.UUID `json:"sector_id" db:"sector_id"`
	Name     string    `json:"name" db:"name"`
}
