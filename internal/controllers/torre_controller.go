package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"torre_tracker/internal/config"
	"torre_tracker/internal/geometry"
	"torre_tracker/internal/models"
)

// GetTorre returns one tower with its line and whether it has an easement
// polygon defined.
func GetTorre(c *gin.Context) {
	torreID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tower ID"})
		return
	}

	var torre models.Torre
	if err := config.DB.Preload("Linea").First(&torre, torreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tower not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var poligonos int64
	config.DB.Model(&models.PoligonoServidumbre{}).Where("torre_id = ?", torre.ID).Count(&poligonos)

	c.JSON(http.StatusOK, gin.H{
		"torre":          torre,
		"tiene_poligono": poligonos > 0,
	})
}

// GetTorreCercana finds the tower closest to a GPS position, optionally
// restricted to one line. The mobile app uses it to preselect the tower a
// field worker is standing at.
func GetTorreCercana(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat is required"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon is required"})
		return
	}

	query := config.DB.Preload("Linea")
	if lineaID := c.Query("linea_id"); lineaID != "" {
		query = query.Where("linea_id = ?", lineaID)
	}

	var torres []models.Torre
	if err := query.Find(&torres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(torres) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No hay torres registradas"})
		return
	}

	nearest := 0
	best := geometry.HaversineDistanceKm(lat, lon, torres[0].Latitud, torres[0].Longitud)
	for i := 1; i < len(torres); i++ {
		d := geometry.HaversineDistanceKm(lat, lon, torres[i].Latitud, torres[i].Longitud)
		if d < best {
			best, nearest = d, i
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"torre":        torres[nearest],
		"distancia_km": best,
	})
}

// GetPoligonoTorre returns the easement polygon of a tower as GeoJSON.
func GetPoligonoTorre(c *gin.Context) {
	torreID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tower ID"})
		return
	}

	var poligono models.PoligonoServidumbre
	if err := config.DB.Where("torre_id = ?", torreID).First(&poligono).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No hay polígono definido para esta torre"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	geoJSON, err := convertWKBToGeoJSON(poligono.Geometria)
	if err != nil {
		logrus.WithError(err).Error("GetPoligonoTorre: stored geometry unreadable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid stored geometry"})
		return
	}

	var geometria json.RawMessage
	if geoJSON != "" {
		geometria = json.RawMessage(geoJSON)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             poligono.ID,
		"nombre":         poligono.Nombre,
		"area_hectareas": poligono.AreaHectareas,
		"ancho_franja":   poligono.AnchoFranja,
		"geometria":      geometria,
	})
}

// CreatePoligono attaches an easement polygon to a tower and/or a line.
// The area in hectares is always recomputed from the geometry on save.
func CreatePoligono(c *gin.Context) {
	var input struct {
		TorreID     *uint   `json:"torre_id"`
		LineaID     *uint   `json:"linea_id"`
		Nombre      string  `json:"nombre"`
		Geometria   string  `json:"geometria" binding:"required"` // GeoJSON polygon
		AnchoFranja float64 `json:"ancho_franja"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	wkbGeom, err := parsePolygonGeometry(input.Geometria)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	if input.TorreID != nil {
		var torre models.Torre
		if err := config.DB.First(&torre, *input.TorreID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tower not found"})
			return
		}
	}

	poligono := models.PoligonoServidumbre{
		TorreID:     input.TorreID,
		LineaID:     input.LineaID,
		Nombre:      input.Nombre,
		Geometria:   wkbGeom,
		AnchoFranja: input.AnchoFranja,
	}
	if err := config.DB.Create(&poligono).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create polygon failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"poligono": poligono})
}

// UpdatePoligono replaces a polygon's geometry; the derived area follows.
func UpdatePoligono(c *gin.Context) {
	polID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid polygon ID"})
		return
	}

	var poligono models.PoligonoServidumbre
	if err := config.DB.First(&poligono, polID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Polygon not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Nombre      *string  `json:"nombre"`
		Geometria   *string  `json:"geometria"`
		AnchoFranja *float64 `json:"ancho_franja"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nombre != nil {
		poligono.Nombre = *input.Nombre
	}
	if input.AnchoFranja != nil {
		poligono.AnchoFranja = *input.AnchoFranja
	}
	if input.Geometria != nil {
		wkbGeom, err := parsePolygonGeometry(*input.Geometria)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
			return
		}
		poligono.Geometria = wkbGeom
	}

	if err := config.DB.Save(&poligono).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"poligono": poligono})
}
