package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"torre_tracker/internal/config"
	"torre_tracker/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// parsePolygonGeometry parses a GeoJSON string into WKB bytes, rejecting
// anything that is not a polygon.
func parsePolygonGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	if _, ok := g.(*geom.Polygon); !ok {
		return nil, errors.New("geometry must be a Polygon")
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateLinea registers a new transmission line (admin only). Lines are
// reference data: the importers resolve them but never create them.
func CreateLinea(c *gin.Context) {
	var input struct {
		Codigo       string  `json:"codigo" binding:"required"`
		Nombre       string  `json:"nombre" binding:"required"`
		Cliente      string  `json:"cliente"`
		LongitudKm   float64 `json:"longitud_km"`
		TensionKv    uint    `json:"tension_kv"`
		Municipios   string  `json:"municipios"`
		Departamento string  `json:"departamento"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateLinea: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	cliente := input.Cliente
	if cliente == "" {
		cliente = models.ClienteTranselca
	}

	linea := models.Linea{
		Codigo:       input.Codigo,
		Nombre:       input.Nombre,
		Cliente:      cliente,
		LongitudKm:   input.LongitudKm,
		TensionKv:    input.TensionKv,
		Municipios:   input.Municipios,
		Departamento: input.Departamento,
		Activa:       true,
	}
	if err := config.DB.Create(&linea).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create line failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"linea": linea})
}

// ListLineas returns lines, optionally filtered by client; inactive lines
// are excluded unless ?activa=false.
func ListLineas(c *gin.Context) {
	query := config.DB.Model(&models.Linea{})

	activa := c.DefaultQuery("activa", "true")
	query = query.Where("activa = ?", activa == "true")
	if cliente := c.Query("cliente"); cliente != "" {
		query = query.Where("cliente = ?", cliente)
	}

	var lineas []models.Linea
	if err := query.Order("codigo").Find(&lineas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lineas": lineas})
}

// ListTorresLinea returns all towers of one line.
func ListTorresLinea(c *gin.Context) {
	lineaID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line ID"})
		return
	}

	var linea models.Linea
	if err := config.DB.First(&linea, lineaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Line not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var torres []models.Torre
	if err := config.DB.Where("linea_id = ?", linea.ID).Order("numero").Find(&torres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"linea": linea.Codigo, "torres": torres})
}
