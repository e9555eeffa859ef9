package importer

import (
	"strings"

	"torre_tracker/internal/models"
)

// ReferenceStore is the read port the resolver needs. Implementations return
// (nil, nil) when the entity does not exist; a non-nil error always means a
// storage failure, never absence.
type ReferenceStore interface {
	LineaByCodigo(codigo string) (*models.Linea, error)
	TiposActividad() ([]models.TipoActividad, error)
	TramoByCodigo(codigo string) (*models.Tramo, error)
	TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error)
}

// Resolver looks up reference entities by natural key. It is constructed per
// import call with the store it needs; the activity-type list is loaded once
// on first use instead of living in a process-wide cache.
type Resolver struct {
	store ReferenceStore

	tipos       []models.TipoActividad
	tiposLoaded bool
}

func NewResolver(store ReferenceStore) *Resolver {
	return &Resolver{store: store}
}

// Linea resolves a line by code, case-insensitive exact match.
func (r *Resolver) Linea(codigo string) (*models.Linea, error) {
	return r.store.LineaByCodigo(strings.TrimSpace(codigo))
}

// TipoActividad resolves an activity type by name. Exact case-insensitive
// match first, against every type including inactive ones; otherwise the
// first active type whose name contains the text is returned with fuzzy=true
// so the caller can record the substitution.
func (r *Resolver) TipoActividad(nombre string) (tipo *models.TipoActividad, fuzzy bool, err error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, false, nil
	}
	if !r.tiposLoaded {
		r.tipos, err = r.store.TiposActividad()
		if err != nil {
			return nil, false, err
		}
		r.tiposLoaded = true
	}

	for i := range r.tipos {
		if strings.EqualFold(r.tipos[i].Nombre, nombre) {
			return &r.tipos[i], false, nil
		}
	}
	lower := strings.ToLower(nombre)
	for i := range r.tipos {
		if r.tipos[i].Activo && strings.Contains(strings.ToLower(r.tipos[i].Nombre), lower) {
			return &r.tipos[i], true, nil
		}
	}
	return nil, false, nil
}

// Tramo resolves a line segment by code.
func (r *Resolver) Tramo(codigo string) (*models.Tramo, error) {
	return r.store.TramoByCodigo(strings.TrimSpace(codigo))
}

// Torre resolves a tower by its (line, number) natural key.
func (r *Resolver) Torre(lineaID uint, numero string) (*models.Torre, error) {
	return r.store.TorreByLineaNumero(lineaID, strings.TrimSpace(numero))
}
