package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"torre_tracker/internal/config"
	"torre_tracker/internal/importer"
	"torre_tracker/internal/models"
	"torre_tracker/internal/repository"
)

// readUpload pulls the uploaded file bytes out of a multipart form field.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

// ImportarProgramacion ingests the client's monthly Excel programming.
// Form fields: archivo (xlsx), anio, mes, linea_codigo (optional default line
// context), actualizar_existentes.
func ImportarProgramacion(c *gin.Context) {
	data, filename, err := readUpload(c, "archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}

	anio, err := strconv.Atoi(c.PostForm("anio"))
	if err != nil || anio < 2000 || anio > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid anio"})
		return
	}
	mes, err := strconv.Atoi(c.PostForm("mes"))
	if err != nil || mes < 1 || mes > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mes"})
		return
	}

	var lineaID uint
	if codigo := c.PostForm("linea_codigo"); codigo != "" {
		var linea models.Linea
		if err := config.DB.Where("LOWER(codigo) = LOWER(?)", codigo).First(&linea).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Línea no encontrada: " + codigo})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		lineaID = linea.ID
	}

	// Reuse the batch for the same (year, month, line) so re-imports update
	// the existing programming instead of duplicating it.
	var prog models.ProgramacionMensual
	err = config.DB.Where("anio = ? AND mes = ? AND linea_id = ?", anio, mes, lineaID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.ProgramacionMensual{Anio: uint(anio), Mes: uint(mes), LineaID: lineaID, ArchivoOrigen: filename}
		if err := config.DB.Create(&prog).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts := importer.Options{ActualizarExistentes: c.PostForm("actualizar_existentes") == "true"}
	imp := importer.NewScheduleImporter(repository.NewScheduleStore(config.DB))
	outcome := imp.Import(data, &prog, opts)

	logrus.WithFields(logrus.Fields{
		"archivo": filename,
		"anio":    anio,
		"mes":     mes,
		"creadas": len(outcome.Created),
		"errores": len(outcome.Errors),
	}).Info("schedule import finished")

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, outcome)
}

// ImportarKMZ ingests a KMZ/KML tower file for one line.
// Form fields: archivo (kmz/kml), linea_codigo, actualizar_existentes.
func ImportarKMZ(c *gin.Context) {
	data, filename, err := readUpload(c, "archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}

	codigo := c.PostForm("linea_codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "linea_codigo is required"})
		return
	}
	var linea models.Linea
	if err := config.DB.Where("LOWER(codigo) = LOWER(?)", codigo).First(&linea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Línea no encontrada: " + codigo})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	opts := importer.Options{ActualizarExistentes: c.PostForm("actualizar_existentes") == "true"}
	imp := importer.NewKMZImporter(repository.NewTowerStore(config.DB))
	outcome := imp.Import(data, filename, &linea, opts)

	logrus.WithFields(logrus.Fields{
		"archivo": filename,
		"linea":   linea.Codigo,
		"creadas": len(outcome.Created),
		"errores": len(outcome.Errors),
	}).Info("kmz import finished")

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, outcome)
}
