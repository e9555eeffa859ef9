package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func rectangle(minLon, minLat, maxLon, maxLat float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}})
}

func TestPointInPolygonAgreesWithRangeCheckOnRectangles(t *testing.T) {
	poly := rectangle(-74.30, 10.40, -74.10, 10.60)

	cases := []struct {
		lat, lon float64
	}{
		{10.50, -74.20}, // center
		{10.41, -74.29},
		{10.59, -74.11},
		{10.70, -74.20}, // north of box
		{10.50, -74.50}, // west of box
		{9.90, -74.20},
	}
	for _, c := range cases {
		want := c.lat >= 10.40 && c.lat <= 10.60 && c.lon >= -74.30 && c.lon <= -74.10
		assert.Equal(t, want, PointInPolygon(c.lat, c.lon, poly), "point (%f, %f)", c.lat, c.lon)
	}
}

func TestPointInPolygonBoundaryIsInclusive(t *testing.T) {
	poly := rectangle(-74.30, 10.40, -74.10, 10.60)

	// vertex
	assert.True(t, PointInPolygon(10.40, -74.30, poly))
	// edge midpoints
	assert.True(t, PointInPolygon(10.40, -74.20, poly))
	assert.True(t, PointInPolygon(10.50, -74.10, poly))
}

func TestPointInPolygonNilAndEmpty(t *testing.T) {
	assert.False(t, PointInPolygon(10.5, -74.2, nil))
	assert.False(t, PointInPolygon(10.5, -74.2, geom.NewPolygon(geom.XY)))
}

func TestPolygonAreaWindingInvariant(t *testing.T) {
	ccw := rectangle(-74.30, 10.40, -74.10, 10.60)
	cw := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-74.30, 10.40}, {-74.30, 10.60}, {-74.10, 10.60}, {-74.10, 10.40}, {-74.30, 10.40},
	}})

	a1 := PolygonAreaHectares(ccw)
	a2 := PolygonAreaHectares(cw)
	assert.Greater(t, a1, 0.0)
	assert.InDelta(t, a1, a2, 1e-9)
}

func TestPolygonAreaSmallSquareAtEquator(t *testing.T) {
	// 0.001° x 0.001° at the equator is roughly a 111.32 m square.
	poly := rectangle(0, 0, 0.001, 0.001)
	ha := PolygonAreaHectares(poly)
	assert.InDelta(t, 1.239, ha, 0.02)
}

func TestPolygonAreaHoleSubtracted(t *testing.T) {
	withHole := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{0, 0}, {0.002, 0}, {0.002, 0.002}, {0, 0.002}, {0, 0}},
		{{0.0005, 0.0005}, {0.0015, 0.0005}, {0.0015, 0.0015}, {0.0005, 0.0015}, {0.0005, 0.0005}},
	})
	full := rectangle(0, 0, 0.002, 0.002)
	assert.Less(t, PolygonAreaHectares(withHole), PolygonAreaHectares(full))
}

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistanceKm(10.5, -74.2, 10.5, -74.2))

	d1 := HaversineDistanceKm(10.5, -74.2, 11.0, -74.8)
	d2 := HaversineDistanceKm(11.0, -74.8, 10.5, -74.2)
	assert.InDelta(t, d1, d2, 1e-9)

	// one degree of latitude is ~111 km
	assert.InDelta(t, 111.2, HaversineDistanceKm(10.0, -74.0, 11.0, -74.0), 1.0)
}

func TestCentroid(t *testing.T) {
	lon, lat := Centroid([]geom.Coord{{-74.0, 10.0}, {-74.2, 10.4}, {-74.4, 10.2}})
	assert.InDelta(t, -74.2, lon, 1e-9)
	assert.InDelta(t, 10.2, lat, 1e-9)

	lon, lat = Centroid(nil)
	assert.Equal(t, 0.0, lon)
	assert.Equal(t, 0.0, lat)
}
