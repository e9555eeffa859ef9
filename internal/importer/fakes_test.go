package importer

import (
	"fmt"
	"strings"

	"torre_tracker/internal/models"
)

// fakeScheduleStore is an in-memory ScheduleStore so the importer tests run
// without a database.
type fakeScheduleStore struct {
	lineas      []models.Linea
	tipos       []models.TipoActividad
	tramos      []models.Tramo
	torres      []models.Torre
	actividades []*models.Actividad

	nextID     uint
	failCreate bool
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{nextID: 1}
}

func (f *fakeScheduleStore) LineaByCodigo(codigo string) (*models.Linea, error) {
	for i := range f.lineas {
		if strings.EqualFold(f.lineas[i].Codigo, codigo) {
			return &f.lineas[i], nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) TiposActividad() ([]models.TipoActividad, error) {
	return f.tipos, nil
}

func (f *fakeScheduleStore) TramoByCodigo(codigo string) (*models.Tramo, error) {
	for i := range f.tramos {
		if strings.EqualFold(f.tramos[i].Codigo, codigo) {
			return &f.tramos[i], nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error) {
	for i := range f.torres {
		if f.torres[i].LineaID == lineaID && strings.EqualFold(f.torres[i].Numero, numero) {
			return &f.torres[i], nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) ActividadByAvisoSap(aviso string) (*models.Actividad, error) {
	for _, a := range f.actividades {
		if a.AvisoSap == aviso {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) CreateActividad(a *models.Actividad) error {
	if f.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	a.ID = f.nextID
	f.nextID++
	f.actividades = append(f.actividades, a)
	return nil
}

func (f *fakeScheduleStore) SaveActividad(a *models.Actividad) error {
	for i, existing := range f.actividades {
		if existing.ID == a.ID {
			f.actividades[i] = a
			return nil
		}
	}
	return fmt.Errorf("actividad %d not found", a.ID)
}

func (f *fakeScheduleStore) CountActividades(programacionID uint) (int64, error) {
	var n int64
	for _, a := range f.actividades {
		if a.ProgramacionID == programacionID {
			n++
		}
	}
	return n, nil
}

func (f *fakeScheduleStore) SaveProgramacion(p *models.ProgramacionMensual) error {
	return nil
}

func (f *fakeScheduleStore) Transact(fn func(ScheduleStore) error) error {
	return fn(f)
}

// fakeTowerStore is an in-memory TowerStore for the KMZ importer tests.
type fakeTowerStore struct {
	torres     []*models.Torre
	nextID     uint
	failCreate bool
}

func newFakeTowerStore() *fakeTowerStore {
	return &fakeTowerStore{nextID: 1}
}

func (f *fakeTowerStore) TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error) {
	for _, t := range f.torres {
		if t.LineaID == lineaID && strings.EqualFold(t.Numero, numero) {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTowerStore) CreateTorre(t *models.Torre) error {
	if f.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	t.ID = f.nextID
	f.nextID++
	f.torres = append(f.torres, t)
	return nil
}

func (f *fakeTowerStore) SaveTorre(t *models.Torre) error {
	for i, existing := range f.torres {
		if existing.ID == t.ID {
			f.torres[i] = t
			return nil
		}
	}
	return fmt.Errorf("torre %d not found", t.ID)
}

func (f *fakeTowerStore) Transact(fn func(TowerStore) error) error {
	return fn(f)
}
