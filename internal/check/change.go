package check

import (
	"math"

	"github.com/flybeeper/gps-checker/internal/geo"
	"github.com/flybeeper/gps-checker/internal/models"
)

// changeState скорость и направление предыдущей записи (nil - не определены)
type changeState struct {
	prevSpeed   *float64
	prevBearing *float64
}

// step вычисляет ускорение и изменение направления относительно предыдущей записи.
// Состояние всегда заменяется значениями текущей записи, даже неопределенными:
// запись после точки без скорости тоже остается без Change.
func (s changeState) step(rec models.MovementRecord) (changeState, models.ChangeRecord) {
	out := models.ChangeRecord{MovementRecord: rec}

	if s.prevSpeed != nil && rec.Movement != nil {
		change := &models.Change{}
		if s.prevBearing != nil {
			change.BearingChangeDegrees = geo.AngleBetween(*s.prevBearing, rec.Movement.BearingDegrees)
		}
		if speed, ok := rec.Speed(); ok {
			change.AccelerationG = models.Float(AccelerationG(*s.prevSpeed, speed, rec.Movement.ElapsedSeconds))
		}
		out.Change = change
	}

	var next changeState
	if speed, ok := rec.Speed(); ok {
		next.prevSpeed = &speed
	}
	if bearing, ok := rec.Bearing(); ok {
		next.prevBearing = &bearing
	}

	return next, out
}

// AccelerationG изменение скорости (км/ч) за интервал текущей записи, в g,
// округленное до сотых (половина к четному). Интервал берется у текущей записи, а не между
// двумя замерами скорости.
func AccelerationG(v0, v1 float64, elapsedSeconds int) float64 {
	deltaMS := (v1 - v0) * 1000 / 3600
	g := deltaMS / float64(elapsedSeconds) / StandardGravity
	return roundHundredths(g)
}

// roundHundredths округляет до сотых, половину к четному
func roundHundredths(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// DeriveChanges добавляет ускорение и изменение направления к записям движения
func DeriveChanges(records []models.MovementRecord) []models.ChangeRecord {
	return scan(records, changeState{}, changeState.step)
}
