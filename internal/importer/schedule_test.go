package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"torre_tracker/internal/models"
)

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func scheduleFixture() (*fakeScheduleStore, *models.ProgramacionMensual) {
	store := newFakeScheduleStore()
	store.lineas = []models.Linea{{Codigo: "L-838", Nombre: "Sabanalarga - Fundación"}}
	store.lineas[0].ID = 1
	store.tipos = []models.TipoActividad{
		{Codigo: "PODA", Nombre: "Poda de Vegetación", Activo: true},
		{Codigo: "LAV", Nombre: "Lavado Tradicional", Activo: true},
	}
	store.tipos[0].ID = 1
	store.tipos[1].ID = 2
	store.torres = []models.Torre{{LineaID: 1, Numero: "15"}}
	store.torres[0].ID = 7
	store.tramos = []models.Tramo{{LineaID: 1, Codigo: "TR-1", TorreInicioID: 5, TorreFinID: 6}}
	store.tramos[0].ID = 3

	prog := &models.ProgramacionMensual{Anio: 2026, Mes: 3, LineaID: 1}
	prog.ID = 10
	return store, prog
}

func TestScheduleImportUnreadableFile(t *testing.T) {
	store, prog := scheduleFixture()
	out := NewScheduleImporter(store).Import([]byte("this is not a workbook"), prog, Options{})

	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)
	assert.Empty(t, store.actividades)
}

func TestScheduleImportMissingRequiredColumns(t *testing.T) {
	store, prog := scheduleFixture()

	// no activity-type column at all
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Valor"},
		{"L-838", "1000"},
	})
	out := NewScheduleImporter(store).Import(data, prog, Options{})
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "Tipo de Actividad")
	assert.Empty(t, store.actividades)

	// no line column and no default line context
	progSinLinea := &models.ProgramacionMensual{Anio: 2026, Mes: 3}
	data = buildXLSX(t, [][]interface{}{
		{"Tipo Actividad"},
		{"Poda de Vegetación"},
	})
	out = NewScheduleImporter(store).Import(data, progSinLinea, Options{})
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "Línea")
}

func TestScheduleImportPartialFailure(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Aviso SAP", "Línea", "Tipo Actividad", "Valor"},
		{"A-1", "L-838", "Poda de Vegetación", "1000"},
		{"A-2", "L-838", "Tipo Fantasma", "1000"},
		{"A-3", "L-838", "Poda de Vegetación", "2500,50"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Equal(t, []int{2, 4}, out.Created)
	assert.Equal(t, []int{3}, out.Skipped)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, 3, out.Warnings[0].Index)
	assert.Contains(t, out.Warnings[0].Message, "Tipo Fantasma")

	// the valid rows are committed
	require.Len(t, store.actividades, 2)
	assert.Equal(t, "A-1", store.actividades[0].AvisoSap)
	assert.InDelta(t, 2500.50, store.actividades[1].ValorFacturacion, 1e-9)
	assert.Equal(t, models.ActividadPendiente, store.actividades[0].Estado)
	assert.Equal(t, 2026, store.actividades[0].FechaProgramada.Year())
	assert.Equal(t, 1, store.actividades[0].FechaProgramada.Day())
}

func TestScheduleImportDetectedColumns(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Aviso SAP", "Línea", "Tipo Actividad", "Columna Rara"},
		{"A-1", "L-838", "Poda de Vegetación", "x"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})
	require.True(t, out.Success)
	assert.ElementsMatch(t, []string{ColAvisoSap, ColLinea, ColTipoActividad}, out.DetectedColumns)
}

func TestScheduleImportIdempotentWithOverwrite(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Aviso SAP", "Línea", "Tipo Actividad"},
		{"A-1", "L-838", "Poda de Vegetación"},
		{"A-2", "L-838", "Lavado Tradicional"},
	})
	imp := NewScheduleImporter(store)

	first := imp.Import(data, prog, Options{ActualizarExistentes: true})
	require.True(t, first.Success)
	assert.Len(t, first.Created, 2)
	assert.Empty(t, first.Updated)

	second := imp.Import(data, prog, Options{ActualizarExistentes: true})
	require.True(t, second.Success)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Updated, 2)
	assert.Len(t, store.actividades, 2)
}

func TestScheduleImportDuplicateSkippedWithoutOverwrite(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Aviso SAP", "Línea", "Tipo Actividad"},
		{"A-1", "L-838", "Poda de Vegetación"},
	})
	imp := NewScheduleImporter(store)

	imp.Import(data, prog, Options{})
	out := imp.Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Empty(t, out.Created)
	assert.Equal(t, []int{2}, out.Skipped)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0].Message, "A-1")
	assert.Len(t, store.actividades, 1)
}

func TestScheduleImportFuzzyActivityTypeWarns(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad"},
		{"L-838", "Lavado"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Len(t, out.Created, 1)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0].Message, "mapeado")
	assert.Equal(t, uint(2), store.actividades[0].TipoActividadID)
}

func TestScheduleImportSegmentSuppliesStartTower(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad", "Tramo", "Torre Inicio"},
		{"L-838", "Poda de Vegetación", "TR-1", "15"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	require.Len(t, store.actividades, 1)
	// the segment's start tower wins over the explicit tower column
	require.NotNil(t, store.actividades[0].TorreID)
	assert.Equal(t, uint(5), *store.actividades[0].TorreID)
	require.NotNil(t, store.actividades[0].TramoID)
	assert.Equal(t, uint(3), *store.actividades[0].TramoID)
}

func TestScheduleImportTowerNumberNormalized(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad", "Torre Inicio"},
		{"L-838", "Poda de Vegetación", "015"},
		{"L-838", "Lavado Tradicional", "Torre 15"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Empty(t, out.Warnings)
	require.Len(t, store.actividades, 2)
	for _, a := range store.actividades {
		require.NotNil(t, a.TorreID)
		assert.Equal(t, uint(7), *a.TorreID)
	}
}

func TestScheduleImportOptionalResolutionFailuresAreWarnings(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad", "Tramo", "Torre Inicio", "Valor"},
		{"L-838", "Poda de Vegetación", "TR-99", "999", "N/A"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Len(t, out.Created, 1)
	assert.Len(t, out.Warnings, 3) // tramo, torre, billing value
	require.Len(t, store.actividades, 1)
	assert.Nil(t, store.actividades[0].TorreID)
	assert.Equal(t, 0.0, store.actividades[0].ValorFacturacion)
}

func TestScheduleImportRowErrorDoesNotAbortBatch(t *testing.T) {
	store, prog := scheduleFixture()
	store.failCreate = true
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad"},
		{"L-838", "Poda de Vegetación"},
		{"L-838", "Lavado Tradicional"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Empty(t, out.Created)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, 2, out.Errors[0].Index)
	assert.Equal(t, 3, out.Errors[1].Index)
}

func TestScheduleImportUnknownLineFallsBackToContext(t *testing.T) {
	store, prog := scheduleFixture()
	data := buildXLSX(t, [][]interface{}{
		{"Línea", "Tipo Actividad"},
		{"L-999", "Poda de Vegetación"},
	})

	out := NewScheduleImporter(store).Import(data, prog, Options{})

	require.True(t, out.Success)
	assert.Len(t, out.Created, 1)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0].Message, "L-999")
	assert.Equal(t, uint(1), store.actividades[0].LineaID)
}
