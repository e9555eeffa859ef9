package models

import (
	"gorm.io/gorm"
)

// Client owners of the transmission lines under maintenance contract
const (
	ClienteTranselca     = "TRANSELCA"
	ClienteIntercolombia = "INTERCOLOMBIA"
)

// Linea represents a transmission line (the managed linear asset).
// Lines are reference data: the importers resolve them by code but never create them.
type Linea struct {
	gorm.Model

	Codigo        string  `json:"codigo" gorm:"uniqueIndex;size:20" binding:"required"` // unique line code, e.g. L-838
	Nombre        string  `json:"nombre" binding:"required"`
	Cliente       string  `json:"cliente" gorm:"size:20;default:TRANSELCA"`
	LongitudKm    float64 `json:"longitud_km"`
	TensionKv     uint    `json:"tension_kv"`
	Municipios    string  `json:"municipios" gorm:"size:500"`
	Departamento  string  `json:"departamento" gorm:"size:100"`
	Activa        bool    `json:"activa" gorm:"default:true"`
	Observaciones string  `json:"observaciones"`

	// Associations
	Torres    []Torre               `gorm:"foreignKey:LineaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"torres,omitempty"`
	Tramos    []Tramo               `gorm:"foreignKey:LineaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tramos,omitempty"`
	Poligonos []PoligonoServidumbre `gorm:"foreignKey:LineaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"poligonos,omitempty"`
}
