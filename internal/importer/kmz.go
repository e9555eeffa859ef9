package importer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"

	"torre_tracker/internal/geometry"
	"torre_tracker/internal/models"
)

// Colombia bounding box used for the advisory coordinate check. Out-of-range
// placemarks are warned about but still imported.
const (
	regionMinLat = -5.0
	regionMaxLat = 13.0
	regionMinLon = -82.0
	regionMaxLon = -66.0
)

// TowerStore is the persistence surface of the KMZ importer. Transact wraps
// the whole file in one transaction; an error from fn rolls everything back.
type TowerStore interface {
	TorreByLineaNumero(lineaID uint, numero string) (*models.Torre, error)
	CreateTorre(t *models.Torre) error
	SaveTorre(t *models.Torre) error
	Transact(fn func(TowerStore) error) error
}

// KMZImporter upserts towers from KMZ/KML placemark files. Point placemarks
// use their coordinates (and elevation when present); any other geometry
// falls back to the vertex centroid without elevation. Tower numbers come
// from the placemark name or description via the ordered heuristics in
// ExtractTowerNumber.
type KMZImporter struct {
	store TowerStore
}

func NewKMZImporter(store TowerStore) *KMZImporter {
	return &KMZImporter{store: store}
}

// Import processes the file for one line. Unlike the schedule importer, a
// decode failure halfway through the placemark stream aborts and rolls back
// the whole batch: geographic files are structurally fragile, and a systemic
// failure must not leave a half-imported tower set. Per-placemark store
// failures are still recorded individually and do not abort.
func (imp *KMZImporter) Import(data []byte, filename string, linea *models.Linea, opts Options) *Outcome {
	kmlData, err := extractKML(data, filename)
	if err != nil {
		logrus.WithError(err).WithField("file", filename).Error("kmz import: unreadable file")
		return failedOutcome("No se pudo leer el archivo. Verifique que sea un KMZ/KML válido.")
	}

	out := &Outcome{Success: true}

	err = imp.store.Transact(func(tx TowerStore) error {
		dec := xml.NewDecoder(bytes.NewReader(kmlData))
		index := 0
		for {
			pm, err := nextPlacemark(dec)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error al decodificar el archivo: %w", err)
			}
			index++
			imp.processPlacemark(tx, pm, index, linea, opts, out)
		}
	})
	if err != nil {
		logrus.WithError(err).Error("kmz import: batch aborted")
		return failedOutcome(err.Error())
	}
	return out
}

func (imp *KMZImporter) processPlacemark(tx TowerStore, pm *placemark, index int, linea *models.Linea, opts Options, out *Outcome) {
	if len(pm.coords) == 0 {
		out.warn(index, fmt.Sprintf("Placemark %q sin geometría, omitido.", pm.name))
		out.Skipped = append(out.Skipped, index)
		return
	}

	var lat, lon float64
	var alt *float64
	if pm.isPoint {
		lon, lat = pm.coords[0][0], pm.coords[0][1]
		if pm.hasAlt {
			a := pm.coords[0][2]
			alt = &a
		}
	} else {
		cs := make([]geom.Coord, len(pm.coords))
		for i, c := range pm.coords {
			cs[i] = geom.Coord{c[0], c[1]}
		}
		lon, lat = geometry.Centroid(cs)
	}

	if lat < regionMinLat || lat > regionMaxLat || lon < regionMinLon || lon > regionMaxLon {
		nombre := pm.name
		if nombre == "" {
			nombre = "Sin nombre"
		}
		out.warn(index, fmt.Sprintf("Coordenadas fuera de rango para Colombia: %s (%v, %v)", nombre, lat, lon))
		// Still processed: the operator may have legitimate out-of-region data.
	}

	numero := ExtractTowerNumber(pm.name)
	if numero == "" {
		numero = ExtractTowerNumber(pm.description)
	}
	if numero == "" {
		numero = strings.TrimSpace(pm.name)
	}
	if numero == "" {
		out.warn(index, fmt.Sprintf("Placemark sin nombre en (%v, %v), omitido.", lat, lon))
		out.Skipped = append(out.Skipped, index)
		return
	}

	existente, err := tx.TorreByLineaNumero(linea.ID, numero)
	if err != nil {
		out.fail(index, fmt.Sprintf("Error al buscar torre %s: %v", numero, err))
		return
	}

	if existente != nil {
		if !opts.ActualizarExistentes {
			out.warn(index, fmt.Sprintf("Torre %s ya existe en %s. Use \"actualizar existentes\" para sobrescribir.", numero, linea.Codigo))
			out.Skipped = append(out.Skipped, index)
			return
		}
		existente.Latitud = lat
		existente.Longitud = lon
		if alt != nil {
			existente.Altitud = *alt
		}
		if err := tx.SaveTorre(existente); err != nil {
			out.fail(index, fmt.Sprintf("Error al actualizar torre %s: %v", numero, err))
			return
		}
		out.Updated = append(out.Updated, index)
		return
	}

	torre := models.Torre{
		LineaID:  linea.ID,
		Numero:   numero,
		Latitud:  lat,
		Longitud: lon,
		Tipo:     models.TipoSuspension,
		Estado:   models.EstadoBueno,
	}
	if alt != nil {
		torre.Altitud = *alt
	}
	if err := tx.CreateTorre(&torre); err != nil {
		out.fail(index, fmt.Sprintf("Error al crear torre %s: %v", numero, err))
		return
	}
	out.Created = append(out.Created, index)
}

// extractKML returns raw KML bytes from either a plain KML file or a KMZ
// (zip) container, and validates that the content is parseable XML.
func extractKML(data []byte, filename string) ([]byte, error) {
	kmlData := data
	isKMZ := strings.HasSuffix(strings.ToLower(filename), ".kmz")
	if !isKMZ && len(data) >= 2 && data[0] == 'P' && data[1] == 'K' {
		isKMZ = true
	}
	if isKMZ {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("invalid kmz archive: %w", err)
		}
		kmlData = nil
		for _, zf := range zr.File {
			if !strings.HasSuffix(strings.ToLower(zf.Name), ".kml") {
				continue
			}
			rc, err := zf.Open()
			if err != nil {
				return nil, err
			}
			kmlData, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, err
			}
			break
		}
		if kmlData == nil {
			return nil, fmt.Errorf("kmz contains no .kml entry")
		}
	}

	// Cheap readability check before any transaction is opened.
	dec := xml.NewDecoder(bytes.NewReader(kmlData))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("not an xml document: %w", err)
	}
	return kmlData, nil
}

// placemark is one KML Placemark reduced to what the importer needs.
type placemark struct {
	name        string
	description string
	coords      [][3]float64
	isPoint     bool
	hasAlt      bool
}

// nextPlacemark advances the decoder to the next complete Placemark,
// SAX-style. Returns io.EOF when the document is exhausted.
func nextPlacemark(dec *xml.Decoder) (*placemark, error) {
	var pm *placemark
	inPoint := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Placemark":
				pm = &placemark{}
			case "name":
				if pm != nil {
					var s string
					if err := dec.DecodeElement(&s, &el); err != nil {
						return nil, err
					}
					pm.name = strings.TrimSpace(s)
				}
			case "description":
				if pm != nil {
					var s string
					if err := dec.DecodeElement(&s, &el); err != nil {
						return nil, err
					}
					pm.description = strings.TrimSpace(s)
				}
			case "Point":
				if pm != nil {
					inPoint = true
				}
			case "coordinates":
				if pm != nil {
					var s string
					if err := dec.DecodeElement(&s, &el); err != nil {
						return nil, err
					}
					coords, hasAlt := parseCoordinates(s)
					pm.coords = append(pm.coords, coords...)
					if inPoint {
						pm.isPoint = true
						pm.hasAlt = pm.hasAlt || hasAlt
					}
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "Point":
				inPoint = false
			case "Placemark":
				if pm != nil {
					return pm, nil
				}
			}
		}
	}
}

// parseCoordinates splits a KML coordinate list: whitespace-separated tuples
// of "lon,lat[,alt]".
func parseCoordinates(s string) (coords [][3]float64, hasAlt bool) {
	for _, tuple := range strings.Fields(s) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c := [3]float64{lon, lat, 0}
		if len(parts) >= 3 {
			if alt, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err == nil {
				c[2] = alt
				hasAlt = true
			}
		}
		coords = append(coords, c)
	}
	return coords, hasAlt
}
