package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"torre_tracker/internal/geofence"
	"torre_tracker/internal/models"
)

type stubGeoStore struct {
	torre *models.Torre
}

func (s *stubGeoStore) TorreByID(id uint) (*models.Torre, error) {
	return s.torre, nil
}

func (s *stubGeoStore) PoligonoByTorre(torreID uint) (*models.PoligonoServidumbre, error) {
	return nil, nil
}

func postValidarUbicacion(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/campo/validar-ubicacion", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	ValidarUbicacion(c)
	return w
}

func TestValidarUbicacionAcceptsZeroCoordinates(t *testing.T) {
	linea := &models.Linea{Codigo: "L-838"}
	linea.ID = 1
	torre := &models.Torre{LineaID: 1, Linea: linea, Numero: "15"}
	torre.ID = 7

	orig := newCampoValidator
	newCampoValidator = func() *geofence.Validator {
		return geofence.NewValidator(&stubGeoStore{torre: torre})
	}
	defer func() { newCampoValidator = orig }()

	// Latitude 0.0 is a valid position on the equator, not a missing field.
	w := postValidarUbicacion(t, `{"torre_id":7,"latitud":0.0,"longitud":-74.2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dentro_poligono":true`)

	w = postValidarUbicacion(t, `{"torre_id":7,"latitud":4.5,"longitud":0.0}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidarUbicacionRejectsMissingCoordinates(t *testing.T) {
	orig := newCampoValidator
	newCampoValidator = func() *geofence.Validator {
		return geofence.NewValidator(&stubGeoStore{})
	}
	defer func() { newCampoValidator = orig }()

	w := postValidarUbicacion(t, `{"torre_id":7,"longitud":-74.2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
