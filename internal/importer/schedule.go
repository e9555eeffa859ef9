package importer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"torre_tracker/internal/models"
)

// ScheduleStore is everything the schedule importer needs from persistence.
// Transact runs fn inside one transaction and hands it a store bound to it;
// returning an error rolls the whole batch back.
type ScheduleStore interface {
	ReferenceStore
	ActividadByAvisoSap(aviso string) (*models.Actividad, error)
	CreateActividad(a *models.Actividad) error
	SaveActividad(a *models.Actividad) error
	CountActividades(programacionID uint) (int64, error)
	SaveProgramacion(p *models.ProgramacionMensual) error
	Transact(fn func(ScheduleStore) error) error
}

// ScheduleImporter upserts scheduled activities from the client's monthly
// Excel programming. Column layout is not fixed: headers are matched against
// synonym lists and the two structurally required columns (línea, tipo de
// actividad) abort the import up front when missing. Everything else is
// per-row: a bad row is skipped or errored and the batch commits the rest.
type ScheduleImporter struct {
	store ScheduleStore
}

func NewScheduleImporter(store ScheduleStore) *ScheduleImporter {
	return &ScheduleImporter{store: store}
}

// Import parses the xlsx bytes and creates/updates activities attached to the
// given monthly programming. prog.Linea, when set, is the default line
// context for rows without an explicit line code.
func (imp *ScheduleImporter) Import(data []byte, prog *models.ProgramacionMensual, opts Options) *Outcome {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		logrus.WithError(err).Error("schedule import: cannot open workbook")
		return failedOutcome("No se pudo leer el archivo Excel: " + err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return failedOutcome("El archivo no contiene hojas")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return failedOutcome("No se pudieron leer las filas: " + err.Error())
	}
	if len(rows) == 0 {
		return failedOutcome("El archivo está vacío")
	}

	columns := DetectColumns(rows[0])
	logrus.WithField("columns", columns).Info("schedule import: detected columns")

	if _, ok := columns[ColLinea]; !ok && prog.LineaID == 0 {
		return failedOutcome("No se encontró la columna de Línea en el archivo")
	}
	if _, ok := columns[ColTipoActividad]; !ok {
		return failedOutcome("No se encontró la columna de Tipo de Actividad en el archivo")
	}

	out := &Outcome{Success: true}
	for field := range columns {
		out.DetectedColumns = append(out.DetectedColumns, field)
	}

	err = imp.store.Transact(func(tx ScheduleStore) error {
		resolver := NewResolver(tx)

		// Row 1 is the header; data rows keep their spreadsheet numbering.
		for i, row := range rows[1:] {
			rowNum := i + 2
			tag, rowErr := imp.processRow(tx, resolver, row, rowNum, columns, prog, opts, out)
			if rowErr != nil {
				// Row-level failures never abort the batch.
				logrus.WithError(rowErr).WithField("fila", rowNum).Warn("schedule import: row failed")
				out.fail(rowNum, rowErr.Error())
				continue
			}
			switch tag {
			case rowCreated:
				out.Created = append(out.Created, rowNum)
			case rowUpdated:
				out.Updated = append(out.Updated, rowNum)
			case rowSkipped:
				out.Skipped = append(out.Skipped, rowNum)
			}
		}

		total, err := tx.CountActividades(prog.ID)
		if err != nil {
			return err
		}
		prog.TotalActividades = uint(total)
		return tx.SaveProgramacion(prog)
	})
	if err != nil {
		logrus.WithError(err).Error("schedule import: batch transaction failed")
		return failedOutcome("Error al procesar el archivo: " + err.Error())
	}
	return out
}

type rowTag int

const (
	rowCreated rowTag = iota
	rowUpdated
	rowSkipped
)

// processRow handles one data row. Returned errors are recorded against the
// row; panics from unexpected data are converted to row errors too, so one
// malformed row can never take down the batch.
func (imp *ScheduleImporter) processRow(
	tx ScheduleStore,
	resolver *Resolver,
	row []string,
	rowNum int,
	columns map[string]int,
	prog *models.ProgramacionMensual,
	opts Options,
	out *Outcome,
) (tag rowTag, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error inesperado: %v", r)
		}
	}()

	avisoSap := cellValue(row, columns, ColAvisoSap)
	lineaCodigo := cellValue(row, columns, ColLinea)
	tipoNombre := cellValue(row, columns, ColTipoActividad)
	tramoCodigo := cellValue(row, columns, ColTramo)
	torreInicio := cellValue(row, columns, ColTorreInicio)
	valorRaw := cellValue(row, columns, ColValorFacturacion)
	ejecutor := cellValue(row, columns, ColEjecutor)
	observaciones := cellValue(row, columns, ColObservaciones)

	if lineaCodigo == "" && prog.LineaID == 0 {
		out.warn(rowNum, "No se especificó línea y no hay línea asociada a la programación")
		return rowSkipped, nil
	}
	if tipoNombre == "" {
		out.warn(rowNum, "No se especificó tipo de actividad")
		return rowSkipped, nil
	}

	// Explicit line code wins over the batch's default line context.
	lineaID := prog.LineaID
	if lineaCodigo != "" {
		linea, err := resolver.Linea(lineaCodigo)
		if err != nil {
			return 0, err
		}
		if linea == nil {
			out.warn(rowNum, "Línea no encontrada: "+lineaCodigo)
			if prog.LineaID == 0 {
				return rowSkipped, nil
			}
		} else {
			lineaID = linea.ID
		}
	}

	tipo, fuzzy, err := resolver.TipoActividad(tipoNombre)
	if err != nil {
		return 0, err
	}
	if tipo == nil {
		out.warn(rowNum, "Tipo de actividad no encontrado: "+tipoNombre)
		return rowSkipped, nil
	}
	if fuzzy {
		out.warn(rowNum, fmt.Sprintf("Tipo de actividad %q mapeado a %q", tipoNombre, tipo.Nombre))
	}

	// Segment and tower are optional; failures here are advisories only.
	// A resolved segment supplies its start tower and overrides the column.
	var tramoID, torreID *uint
	if tramoCodigo != "" {
		tramo, err := resolver.Tramo(tramoCodigo)
		if err != nil {
			return 0, err
		}
		if tramo == nil {
			out.warn(rowNum, "Tramo no encontrado: "+tramoCodigo)
		} else {
			tramoID = &tramo.ID
			torreID = &tramo.TorreInicioID
		}
	}
	if torreID == nil && torreInicio != "" {
		// Same identifier heuristics as the KMZ importer, so "015" and
		// "Torre 15" hit the tower stored as "15".
		numero := ExtractTowerNumber(torreInicio)
		if numero == "" {
			numero = torreInicio
		}
		torre, err := resolver.Torre(lineaID, numero)
		if err != nil {
			return 0, err
		}
		if torre == nil {
			out.warn(rowNum, "Torre no encontrada: "+torreInicio)
		} else {
			torreID = &torre.ID
		}
	}

	valorFact := 0.0
	if valorRaw != "" {
		v, err := ParseBillingValue(valorRaw)
		if err != nil {
			out.warn(rowNum, "Valor de facturación inválido: "+valorRaw)
		} else {
			valorFact = v
		}
	}

	// Upsert keyed on the SAP notice number when present.
	var existente *models.Actividad
	if avisoSap != "" {
		existente, err = tx.ActividadByAvisoSap(avisoSap)
		if err != nil {
			return 0, err
		}
	}

	if existente != nil {
		if !opts.ActualizarExistentes {
			out.warn(rowNum, fmt.Sprintf("Actividad con Aviso SAP %s ya existe, omitiendo", avisoSap))
			return rowSkipped, nil
		}
		existente.LineaID = lineaID
		existente.TipoActividadID = tipo.ID
		existente.TorreID = torreID
		existente.TramoID = tramoID
		existente.ProgramacionID = prog.ID
		if ejecutor != "" {
			existente.Ejecutor = ejecutor
		}
		if valorFact > 0 {
			existente.ValorFacturacion = valorFact
		}
		if observaciones != "" {
			existente.ObservacionesProgramacion = observaciones
		}
		if err := tx.SaveActividad(existente); err != nil {
			return 0, err
		}
		return rowUpdated, nil
	}

	actividad := models.Actividad{
		LineaID:                   lineaID,
		TorreID:                   torreID,
		TramoID:                   tramoID,
		TipoActividadID:           tipo.ID,
		ProgramacionID:            prog.ID,
		AvisoSap:                  avisoSap,
		FechaProgramada:           time.Date(int(prog.Anio), time.Month(prog.Mes), 1, 0, 0, 0, 0, time.UTC),
		Estado:                    models.ActividadPendiente,
		Prioridad:                 models.PrioridadNormal,
		Ejecutor:                  ejecutor,
		ValorFacturacion:          valorFact,
		ObservacionesProgramacion: observaciones,
	}
	if err := tx.CreateActividad(&actividad); err != nil {
		return 0, err
	}
	return rowCreated, nil
}
