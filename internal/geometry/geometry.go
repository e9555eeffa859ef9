// Package geometry implements the containment, area and distance math used
// by the easement geofence and the geographic importers. All inputs are
// geographic coordinates in decimal degrees (lon/lat order inside go-geom
// coords, matching WKB storage).
package geometry

import (
	"math"

	"github.com/twpayne/go-geom"
)

const (
	earthRadiusKm = 6371.0
	// Spherical Mercator radius, matches EPSG:3857
	mercatorRadiusM = 6378137.0
)

// PointInPolygon reports whether the point (lat, lon) lies inside the
// polygon. A point exactly on the boundary counts as inside. Containment is
// evaluated on the raw degree coordinates, which is accurate for the
// sub-kilometer easement polygons this system manages; it degrades for
// polygons spanning large longitude ranges.
func PointInPolygon(lat, lon float64, poly *geom.Polygon) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}
	outer := poly.LinearRing(0).Coords()
	if !ringContains(lon, lat, outer) {
		return false
	}
	// Points inside a hole are outside, unless on the hole's edge.
	for i := 1; i < poly.NumLinearRings(); i++ {
		hole := poly.LinearRing(i).Coords()
		if onRingBoundary(lon, lat, hole) {
			return true
		}
		if rayCast(lon, lat, hole) {
			return false
		}
	}
	return true
}

// ringContains is an inclusive containment test against a single ring.
func ringContains(x, y float64, ring []geom.Coord) bool {
	if onRingBoundary(x, y, ring) {
		return true
	}
	return rayCast(x, y, ring)
}

// rayCast runs the even-odd crossing test.
func rayCast(x, y float64, ring []geom.Coord) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) {
			xCross := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func onRingBoundary(x, y float64, ring []geom.Coord) bool {
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(x, y, ring[j][0], ring[j][1], ring[i][0], ring[i][1]) {
			return true
		}
	}
	return false
}

func onSegment(px, py, ax, ay, bx, by float64) bool {
	const eps = 1e-12
	cross := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	if math.Abs(cross) > eps {
		return false
	}
	dot := (px-ax)*(bx-ax) + (py-ay)*(by-ay)
	if dot < -eps {
		return false
	}
	lenSq := (bx-ax)*(bx-ax) + (by-ay)*(by-ay)
	return dot <= lenSq+eps
}

// PolygonAreaHectares computes the polygon area in hectares. Vertices are
// reprojected to spherical Mercator before running the shoelace formula, and
// the Mercator area inflation (sec² of latitude) is compensated at the
// polygon's mean latitude. Holes are subtracted. The approximation holds for
// the sub-kilometer easement zones this system targets; it is not a geodesic
// area algorithm.
func PolygonAreaHectares(poly *geom.Polygon) float64 {
	if poly == nil || poly.NumLinearRings() == 0 {
		return 0
	}
	area := ringAreaM2(poly.LinearRing(0).Coords())
	for i := 1; i < poly.NumLinearRings(); i++ {
		area -= ringAreaM2(poly.LinearRing(i).Coords())
	}
	if area < 0 {
		area = 0
	}
	return area / 10000.0
}

func ringAreaM2(ring []geom.Coord) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum, meanLat float64
	n := len(ring)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, c := range ring {
		xs[i], ys[i] = mercator(c[0], c[1])
		meanLat += c[1]
	}
	meanLat /= float64(n)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		sum += xs[j]*ys[i] - xs[i]*ys[j]
	}
	scale := math.Cos(meanLat * math.Pi / 180.0)
	return math.Abs(sum/2.0) * scale * scale
}

func mercator(lon, lat float64) (x, y float64) {
	x = mercatorRadiusM * lon * math.Pi / 180.0
	y = mercatorRadiusM * math.Log(math.Tan(math.Pi/4.0+lat*math.Pi/360.0))
	return x, y
}

// Centroid returns the arithmetic mean of the coordinates, lon/lat order.
// Used as the fallback location when importing non-point features.
func Centroid(coords []geom.Coord) (lon, lat float64) {
	if len(coords) == 0 {
		return 0, 0
	}
	for _, c := range coords {
		lon += c[0]
		lat += c[1]
	}
	n := float64(len(coords))
	return lon / n, lat / n
}

// HaversineDistanceKm returns the great-circle distance between two points.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
