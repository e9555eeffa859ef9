package models

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"torre_tracker/internal/geometry"
)

// PoligonoServidumbre is an easement polygon: the authorized work area around
// a tower and/or a line. AreaHectareas is derived from the geometry and is
// recomputed on every save, never trusted from caller input.
type PoligonoServidumbre struct {
	gorm.Model

	LineaID *uint  `json:"linea_id" gorm:"index"`
	Linea   *Linea `gorm:"foreignKey:LineaID" json:"linea,omitempty"`

	TorreID *uint  `json:"torre_id" gorm:"index"`
	Torre   *Torre `gorm:"foreignKey:TorreID" json:"torre,omitempty"`

	Nombre string `json:"nombre" gorm:"size:100"`

	// Polygon geometry (WKB, lon/lat ring, SRID 4326)
	Geometria []byte `gorm:"type:bytea" json:"-"`

	AreaHectareas float64 `json:"area_hectareas" gorm:"type:numeric(10,4)"`
	AnchoFranja   float64 `json:"ancho_franja" gorm:"type:numeric(6,2)"`
	Observaciones string  `json:"observaciones"`
}

// Poligono decodes the stored WKB geometry. Returns nil when no geometry is set.
func (p *PoligonoServidumbre) Poligono() (*geom.Polygon, error) {
	if len(p.Geometria) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(p.Geometria)
	if err != nil {
		return nil, err
	}
	poly, ok := g.(*geom.Polygon)
	if !ok {
		return nil, nil
	}
	return poly, nil
}

// BeforeSave recomputes the derived area from the polygon geometry.
func (p *PoligonoServidumbre) BeforeSave(tx *gorm.DB) error {
	poly, err := p.Poligono()
	if err != nil {
		return err
	}
	if poly == nil {
		return nil
	}
	p.AreaHectareas = geometry.PolygonAreaHectares(poly)
	return nil
}
