package models

import (
	"github.com/flybeeper/gps-checker/internal/geo"
)

// GeoPoint представляет географическую точку в десятичных градусах
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// DistanceTo вычисляет расстояние до другой точки в метрах (формула Haversine)
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return geo.Distance(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

// BearingTo возвращает начальный азимут на другую точку, [0, 360)
func (p GeoPoint) BearingTo(other GeoPoint) float64 {
	return geo.Bearing(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

// Geohash возвращает geohash для точки с заданной точностью
func (p GeoPoint) Geohash(precision int) string {
	return geo.Cell(p.Latitude, p.Longitude, precision)
}

// Bounds представляет географические границы трека
type Bounds struct {
	Southwest GeoPoint `json:"sw"`
	Northeast GeoPoint `json:"ne"`
}

// Contains проверяет, содержится ли точка в границах
func (b Bounds) Contains(point GeoPoint) bool {
	return point.Latitude >= b.Southwest.Latitude && point.Latitude <= b.Northeast.Latitude &&
		point.Longitude >= b.Southwest.Longitude && point.Longitude <= b.Northeast.Longitude
}

// DiagonalMeters возвращает диагональ границ в метрах
func (b Bounds) DiagonalMeters() float64 {
	return b.Southwest.DistanceTo(b.Northeast)
}
