package check

import (
	"fmt"

	"github.com/flybeeper/gps-checker/internal/config"
	"github.com/flybeeper/gps-checker/internal/parser"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

// NewDuplicateFinder создает поиск дублей по имени реализации
func NewDuplicateFinder(name string, logger *utils.Logger) (DuplicateFinder, error) {
	switch name {
	case "", "memory":
		return NewMemoryDuplicateFinder(), nil
	case "sqlite":
		return NewSQLiteDuplicateFinder(logger), nil
	default:
		return nil, fmt.Errorf("unknown duplicate finder %q", name)
	}
}

// OptionsFromConfig собирает настройки проверки из конфигурации приложения
func OptionsFromConfig(cfg *config.Config, logger *utils.Logger) (Options, error) {
	finder, err := NewDuplicateFinder(cfg.Check.DuplicateFinder, logger)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Thresholds: Thresholds{
			MaxAccelerationG:  cfg.Check.MaxAccelerationG,
			MaxBearingChange:  cfg.Check.MaxBearingChange,
			MaxElapsedSeconds: cfg.Check.MaxElapsedSeconds,
		},
		Parser: parser.Options{
			SignedHemispheres: cfg.Check.SignedHemispheres,
		},
		Finder:           finder,
		GeohashPrecision: cfg.Geo.GeohashPrecision,
	}, nil
}
