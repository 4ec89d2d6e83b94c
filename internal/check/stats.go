package check

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/flybeeper/gps-checker/internal/models"
)

// Summary сводная статистика трека
type Summary struct {
	Fixes               int            `json:"fixes"`
	Anomalies           int            `json:"anomalies"`
	DuplicateGroups     int            `json:"duplicate_groups"`
	DurationSeconds     int            `json:"duration_seconds"`
	TotalDistanceMeters float64        `json:"total_distance_meters"`
	AvgSpeedKmh         *float64       `json:"avg_speed_kmh"`
	MaxSpeedKmh         *float64       `json:"max_speed_kmh"`
	MaxAbsAccelerationG *float64       `json:"max_abs_acceleration_g"`
	MaxDataGapSeconds   int            `json:"max_data_gap_seconds"`
	RuleCounts          map[string]int `json:"rule_counts"`
	Bounds              models.Bounds  `json:"bounds"`
}

// Summarize вычисляет статистику по классифицированным записям.
// Неопределенные скорости и ускорения в расчет не входят.
func Summarize(records []models.AnnotatedRecord, duplicates []models.DuplicateGroup, ruleCounts map[string]int) Summary {
	s := Summary{
		Fixes:           len(records),
		DuplicateGroups: len(duplicates),
		RuleCounts:      ruleCounts,
	}
	if len(records) == 0 {
		return s
	}

	var (
		distances = make([]float64, 0, len(records))
		speeds    = make([]float64, 0, len(records))
		accels    = make([]float64, 0, len(records))
		lats      = make([]float64, 0, len(records))
		lons      = make([]float64, 0, len(records))
	)

	for _, rec := range records {
		if rec.HasErrors() {
			s.Anomalies++
		}
		lats = append(lats, rec.Latitude)
		lons = append(lons, rec.Longitude)

		if rec.Movement == nil {
			continue
		}
		distances = append(distances, rec.Movement.DistanceMeters)
		if rec.Movement.ElapsedSeconds > s.MaxDataGapSeconds {
			s.MaxDataGapSeconds = rec.Movement.ElapsedSeconds
		}
		if speed, ok := rec.Speed(); ok {
			speeds = append(speeds, speed)
		}
		if rec.Change != nil && rec.Change.AccelerationG != nil {
			g := *rec.Change.AccelerationG
			if g < 0 {
				g = -g
			}
			accels = append(accels, g)
		}
	}

	s.DurationSeconds = records[len(records)-1].Time.Sub(records[0].Time)
	s.TotalDistanceMeters = floats.Sum(distances)

	if len(speeds) > 0 {
		s.AvgSpeedKmh = models.Float(stat.Mean(speeds, nil))
		s.MaxSpeedKmh = models.Float(floats.Max(speeds))
	}
	if len(accels) > 0 {
		s.MaxAbsAccelerationG = models.Float(floats.Max(accels))
	}

	s.Bounds = models.Bounds{
		Southwest: models.GeoPoint{Latitude: floats.Min(lats), Longitude: floats.Min(lons)},
		Northeast: models.GeoPoint{Latitude: floats.Max(lats), Longitude: floats.Max(lons)},
	}

	return s
}
