package check

import (
	"github.com/flybeeper/gps-checker/internal/models"
)

// movementState состояние прохода: предыдущая точка
type movementState struct {
	prev    models.Fix
	hasPrev bool
}

// step вычисляет параметры движения от предыдущей точки к текущей
func (s movementState) step(fix models.Fix) (movementState, models.MovementRecord) {
	rec := models.MovementRecord{Fix: fix}

	if s.hasPrev {
		elapsed := fix.Time.Sub(s.prev.Time)
		distance := s.prev.DistanceTo(fix.GeoPoint)

		m := &models.Movement{
			ElapsedSeconds: elapsed,
			DistanceMeters: distance,
			BearingDegrees: s.prev.BearingTo(fix.GeoPoint),
		}
		// При нулевом интервале скорость не определена
		if elapsed != 0 {
			m.SpeedKmh = models.Float(SpeedKmh(distance, elapsed))
		}
		rec.Movement = m
	}

	return movementState{prev: fix, hasPrev: true}, rec
}

// SpeedKmh скорость в км/ч по расстоянию в метрах и интервалу в секундах
func SpeedKmh(distanceMeters float64, elapsedSeconds int) float64 {
	return distanceMeters / float64(elapsedSeconds) * 3.6
}

// DeriveMovement вычисляет расстояние, интервал, скорость и направление для
// каждой точки относительно предыдущей. Длина результата равна длине входа,
// у первой записи Movement == nil.
func DeriveMovement(fixes []models.Fix) []models.MovementRecord {
	return scan(fixes, movementState{}, movementState.step)
}
