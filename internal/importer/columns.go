package importer

import (
	"strings"
)

// Logical column names for the monthly programming Excel.
const (
	ColAvisoSap         = "aviso_sap"
	ColLinea            = "linea"
	ColTipoActividad    = "tipo_actividad"
	ColMes              = "mes"
	ColEjecutor         = "ejecutor"
	ColTramo            = "tramo"
	ColTorreInicio      = "torre_inicio"
	ColTorreFin         = "torre_fin"
	ColValorFacturacion = "valor_facturacion"
	ColObservaciones    = "observaciones"
)

// columnSynonyms maps each logical field to the header spellings seen in
// client files. Headers are lower-cased and trimmed before comparison; the
// first synonym list that contains the header wins. Order matters only for
// headers that appear in more than one list, which does not happen today.
var columnSynonyms = []struct {
	Field    string
	Synonyms []string
}{
	{ColAvisoSap, []string{"aviso sap", "aviso", "nro aviso", "numero aviso", "sap", "no. aviso"}},
	{ColLinea, []string{"línea", "linea", "line", "codigo linea", "código línea"}},
	{ColTipoActividad, []string{"tipo actividad", "actividad", "tipo", "tipo de actividad", "descripcion actividad"}},
	{ColMes, []string{"mes", "mes programado", "fecha programada", "mes ejecucion"}},
	{ColEjecutor, []string{"ejecutor", "contratista", "outsourcing", "empresa"}},
	{ColTramo, []string{"tramo", "sector", "seccion"}},
	{ColTorreInicio, []string{"torre inicio", "torre ini", "desde torre", "torre desde"}},
	{ColTorreFin, []string{"torre fin", "torre final", "hasta torre", "torre hasta"}},
	{ColValorFacturacion, []string{"valor", "valor facturacion", "facturacion", "precio", "monto"}},
	{ColObservaciones, []string{"observaciones", "notas", "comentarios", "obs"}},
}

// DetectColumns maps the header row to logical field -> column index.
// Unrecognized headers are ignored, an empty cell never matches.
func DetectColumns(header []string) map[string]int {
	detected := make(map[string]int)
	for idx, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		for _, mapping := range columnSynonyms {
			if _, taken := detected[mapping.Field]; taken {
				continue
			}
			for _, syn := range mapping.Synonyms {
				if name == syn {
					detected[mapping.Field] = idx
					break
				}
			}
		}
	}
	return detected
}

// cellValue reads a mapped cell from a data row, "" when the column was not
// detected or the row is shorter than the header.
func cellValue(row []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
