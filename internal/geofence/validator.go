// Package geofence answers one question: is a reported GPS position inside
// the easement polygon authorized for a tower. The mobile app calls it before
// field data capture; a negative answer is a warning to the user, never a
// hard rejection.
package geofence

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"torre_tracker/internal/geometry"
	"torre_tracker/internal/models"
)

// Store is the read port the validator needs. PoligonoByTorre returns
// (nil, nil) when the tower has no easement polygon.
type Store interface {
	TorreByID(id uint) (*models.Torre, error)
	PoligonoByTorre(torreID uint) (*models.PoligonoServidumbre, error)
}

// Resultado is the validation answer sent back to the mobile client.
type Resultado struct {
	DentroPoligono bool   `json:"dentro_poligono"`
	TorreNumero    string `json:"torre_numero"`
	LineaCodigo    string `json:"linea_codigo"`
	Mensaje        string `json:"mensaje"`
}

type Validator struct {
	store Store
}

func NewValidator(store Store) *Validator {
	return &Validator{store: store}
}

// Validate checks the reported coordinates against the tower's easement
// polygon. A tower without a polygon accepts any location, with an advisory
// message; absence of a polygon is never a blocking condition.
func (v *Validator) Validate(torreID uint, lat, lon float64) (*Resultado, error) {
	torre, err := v.store.TorreByID(torreID)
	if err != nil {
		return nil, err
	}
	if torre == nil {
		return nil, fmt.Errorf("torre %d no existe", torreID)
	}

	lineaCodigo := ""
	if torre.Linea != nil {
		lineaCodigo = torre.Linea.Codigo
	}

	poligono, err := v.store.PoligonoByTorre(torre.ID)
	if err != nil {
		return nil, err
	}

	// A row without usable polygon geometry counts as no polygon at all.
	var poly *geom.Polygon
	if poligono != nil {
		poly, err = poligono.Poligono()
		if err != nil {
			return nil, fmt.Errorf("geometría de polígono inválida: %w", err)
		}
	}
	if poly == nil {
		return &Resultado{
			DentroPoligono: true,
			TorreNumero:    torre.Numero,
			LineaCodigo:    lineaCodigo,
			Mensaje:        "No hay polígono de servidumbre definido. Ubicación aceptada.",
		}, nil
	}

	dentro := geometry.PointInPolygon(lat, lon, poly)
	mensaje := "Ubicación dentro del área de servidumbre autorizada."
	if !dentro {
		mensaje = "ADVERTENCIA: Ubicación fuera del área de servidumbre."
	}

	return &Resultado{
		DentroPoligono: dentro,
		TorreNumero:    torre.Numero,
		LineaCodigo:    lineaCodigo,
		Mensaje:        mensaje,
	}, nil
}
