package geo

import (
	"github.com/mmcloughlin/geohash"
)

const (
	// Maximum precision for geohash
	maxPrecision = 12

	// DefaultPrecision ~38 m cells, достаточно для отметок на карте
	DefaultPrecision = 8
)

// GeohashPrecisionKm maps geohash precision to approximate cell size in km
var GeohashPrecisionKm = map[int]float64{
	1: 5000.0,  // ±2500 km
	2: 1250.0,  // ±625 km
	3: 156.0,   // ±78 km
	4: 39.1,    // ±19.5 km
	5: 4.9,     // ±2.4 km
	6: 1.2,     // ±0.61 km
	7: 0.152,   // ±0.076 km
	8: 0.038,   // ±0.019 km
	9: 0.0048,  // ±0.0024 km
}

// Cell возвращает geohash ячейку точки с заданной точностью.
// Некорректная точность заменяется на DefaultPrecision.
func Cell(lat, lon float64, precision int) string {
	if precision <= 0 || precision > maxPrecision {
		precision = DefaultPrecision
	}
	return geohash.EncodeWithPrecision(lat, lon, uint(precision))
}

// CellCenter возвращает центр ячейки geohash
func CellCenter(cell string) (lat, lon float64) {
	return geohash.DecodeCenter(cell)
}
