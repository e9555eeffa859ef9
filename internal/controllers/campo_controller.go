package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"torre_tracker/internal/config"
	"torre_tracker/internal/geofence"
	"torre_tracker/internal/repository"
)

// newCampoValidator is a seam so tests can swap in a fake store.
var newCampoValidator = func() *geofence.Validator {
	return geofence.NewValidator(repository.NewGeofenceStore(config.DB))
}

// ValidarUbicacion checks whether a field worker's reported GPS position is
// inside the tower's easement polygon. The mobile app calls this before data
// capture; a negative result is a warning to the user, work is never blocked.
// Coordinates bind as pointers: 0.0 is a legal latitude and longitude, only
// an absent field is rejected.
func ValidarUbicacion(c *gin.Context) {
	var input struct {
		TorreID  uint     `json:"torre_id" binding:"required"`
		Latitud  *float64 `json:"latitud" binding:"required"`
		Longitud *float64 `json:"longitud" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	validator := newCampoValidator()
	resultado, err := validator.Validate(input.TorreID, *input.Latitud, *input.Longitud)
	if err != nil {
		logrus.WithError(err).WithField("torre_id", input.TorreID).Warn("ValidarUbicacion failed")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if !resultado.DentroPoligono {
		logrus.WithFields(logrus.Fields{
			"torre":    resultado.TorreNumero,
			"latitud":  *input.Latitud,
			"longitud": *input.Longitud,
		}).Info("field location outside easement polygon")
	}

	c.JSON(http.StatusOK, resultado)
}
