package check

import (
	"context"

	"github.com/flybeeper/gps-checker/internal/models"
)

// StandardGravity стандартное ускорение свободного падения, м/с²
const StandardGravity = 9.80665

// BaseMarkerSize размер отметки на карте без ошибок
const BaseMarkerSize = 20.0

// Цвета отметок (RGBA hex)
const (
	ColorNeutral              models.Color = "#00000077"
	ColorLargeSpeedChange     models.Color = "#7F1184AA" // фиолетовый
	ColorLargeDirectionChange models.Color = "#F58220AA" // оранжевый
	ColorNoMovement           models.Color = "#F30100AA" // красный
	ColorDataGap              models.Color = "#F30100AA" // красный
)

// Thresholds пороги правил классификатора
type Thresholds struct {
	// Модуль ускорения в g, выше которого скорость меняется "слишком резко"
	MaxAccelerationG float64 `json:"max_acceleration_g"`

	// Изменение направления в градусах
	MaxBearingChange float64 `json:"max_bearing_change"`

	// Интервал между точками в секундах, выше которого считается пропуск данных
	MaxElapsedSeconds int `json:"max_elapsed_seconds"`
}

// DefaultThresholds возвращает пороги по умолчанию
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxAccelerationG:  2,
		MaxBearingChange:  90,
		MaxElapsedSeconds: 1,
	}
}

// DuplicateFinder ищет точки с одинаковыми координатами
type DuplicateFinder interface {
	// FindDuplicates возвращает группы (больше одной точки) в порядке первого появления
	FindDuplicates(ctx context.Context, fixes []models.Fix) ([]models.DuplicateGroup, error)

	// Name возвращает имя реализации
	Name() string
}

// scan последовательный проход со свернутым состоянием: каждый выход зависит
// только от текущего входа и состояния после предыдущего
func scan[S, In, Out any](in []In, initial S, step func(S, In) (S, Out)) []Out {
	out := make([]Out, 0, len(in))
	state := initial
	for _, item := range in {
		var next Out
		state, next = step(state, item)
		out = append(out, next)
	}
	return out
}
