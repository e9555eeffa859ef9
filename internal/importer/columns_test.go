package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectColumnsCaseAndDiacriticVariants(t *testing.T) {
	for _, header := range []string{"Línea", "linea", "LINE", "  línea  "} {
		detected := DetectColumns([]string{header})
		idx, ok := detected[ColLinea]
		assert.True(t, ok, "header %q should map to linea", header)
		assert.Equal(t, 0, idx)
	}
}

func TestDetectColumnsFullHeader(t *testing.T) {
	header := []string{"Aviso SAP", "Línea", "Tipo Actividad", "Mes", "Ejecutor", "Tramo", "Torre Inicio", "Torre Fin", "Valor", "Observaciones"}
	detected := DetectColumns(header)

	assert.Len(t, detected, 10)
	assert.Equal(t, 0, detected[ColAvisoSap])
	assert.Equal(t, 1, detected[ColLinea])
	assert.Equal(t, 2, detected[ColTipoActividad])
	assert.Equal(t, 6, detected[ColTorreInicio])
	assert.Equal(t, 8, detected[ColValorFacturacion])
}

func TestDetectColumnsIgnoresUnknownAndEmptyHeaders(t *testing.T) {
	detected := DetectColumns([]string{"", "Columna Misteriosa", "linea", "   "})
	assert.Len(t, detected, 1)
	assert.Equal(t, 2, detected[ColLinea])
}

func TestDetectColumnsFirstMatchWins(t *testing.T) {
	// duplicate headers keep the first occurrence
	detected := DetectColumns([]string{"linea", "línea"})
	assert.Equal(t, 0, detected[ColLinea])
}

func TestCellValue(t *testing.T) {
	columns := map[string]int{ColLinea: 1, ColValorFacturacion: 5}
	row := []string{"x", " L-838 ", "y"}

	assert.Equal(t, "L-838", cellValue(row, columns, ColLinea))
	// column detected but row is short
	assert.Equal(t, "", cellValue(row, columns, ColValorFacturacion))
	// column not detected
	assert.Equal(t, "", cellValue(row, columns, ColTramo))
}
