package models

import (
	"encoding/binary"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"
)

// Structural types for towers
const (
	TipoSuspension = "SUSPENSION"
	TipoAnclaje    = "ANCLAJE"
	TipoTerminal   = "TERMINAL"
	TipoRemate     = "REMATE"
	TipoDerivacion = "DERIVACION"
)

// Condition states for towers
const (
	EstadoBueno   = "BUENO"
	EstadoRegular = "REGULAR"
	EstadoMalo    = "MALO"
	EstadoCritico = "CRITICO"
)

// Torre is a tower/structure on a transmission line.
// (LineaID, Numero) is the natural key used by the importers for upserts.
type Torre struct {
	gorm.Model

	LineaID uint   `json:"linea_id" gorm:"index:idx_torre_linea_numero,unique"`
	Linea   *Linea `gorm:"foreignKey:LineaID" json:"linea,omitempty"`

	Numero string `json:"numero" gorm:"size:20;index:idx_torre_linea_numero,unique" binding:"required"`
	Tipo   string `json:"tipo" gorm:"size:20;default:SUSPENSION"`
	Estado string `json:"estado" gorm:"size:20;default:BUENO"`

	// Decimal degrees, 8 fractional digits (~1.1 mm)
	Latitud  float64 `json:"latitud" gorm:"type:numeric(10,8)"`
	Longitud float64 `json:"longitud" gorm:"type:numeric(11,8)"`
	Altitud  float64 `json:"altitud"`

	// Derived point geometry (WKB, lon/lat order); regenerated on every save
	Geometria []byte `gorm:"type:bytea" json:"-"`

	AlturaEstructura  float64 `json:"altura_estructura"`
	PropietarioPredio string  `json:"propietario_predio" gorm:"size:200"`
	Vereda            string  `json:"vereda" gorm:"size:100"`
	Municipio         string  `json:"municipio" gorm:"size:100"`
	Observaciones     string  `json:"observaciones"`
}

// BeforeSave keeps the derived point geometry consistent with (Latitud, Longitud).
func (t *Torre) BeforeSave(tx *gorm.DB) error {
	if t.Latitud == 0 && t.Longitud == 0 {
		return nil
	}
	pt := geom.NewPointFlat(geom.XY, []float64{t.Longitud, t.Latitud})
	pt.SetSRID(4326)
	raw, err := wkb.Marshal(pt, binary.LittleEndian)
	if err != nil {
		return err
	}
	t.Geometria = raw
	return nil
}
