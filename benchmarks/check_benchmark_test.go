package benchmarks

// Бенчмарки проверки журналов GPS
//
// Ожидаемые результаты (цели производительности):
// - ParseLine: < 3 µs/op
// - Distance / Bearing: < 100 ns/op, 0 allocs/op
// - Полная проверка 3600 точек (час записи 1 Гц): < 20 ms
// - Поиск дублей в SQLite заметно медленнее, чем в памяти
//
// Реалистичные данные: запись раз в секунду, редкие пропуски и стоянки.

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/flybeeper/gps-checker/internal/check"
	"github.com/flybeeper/gps-checker/internal/geo"
	"github.com/flybeeper/gps-checker/internal/models"
	"github.com/flybeeper/gps-checker/internal/parser"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

// generateLog генерирует журнал из n точек вокруг Токио
func generateLog(n int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	var sb strings.Builder
	tod := 8 * 3600
	latSec, lonSec := 29.0, 28.0
	for i := 0; i < n; i++ {
		step := 1
		if rng.Intn(50) == 0 {
			step += rng.Intn(5) // пропуск данных
		}
		tod += step
		if rng.Intn(20) != 0 { // иногда стоим на месте
			latSec += rng.Float64() * 0.3
			lonSec += (rng.Float64() - 0.5) * 0.3
		}

		fmt.Fprintf(&sb, "%s N35%s39'%.1f\" E139%s44'%.1f\"\n",
			models.TimeOfDay(tod%86400), parser.DegreeMark, latSec, parser.DegreeMark, lonSec)
	}
	return sb.String()
}

func BenchmarkParseLine(b *testing.B) {
	line := `10:00:00 N35゜39'29.1" E139゜44'28.8"`

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseLine(line); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = geo.Distance(35.658083, 139.741333, 35.658361, 139.741527)
	}
}

func BenchmarkBearing(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = geo.Bearing(35.658083, 139.741333, 35.658361, 139.741527)
	}
}

// BenchmarkCheckerRun полная проверка журнала разного размера
func BenchmarkCheckerRun(b *testing.B) {
	logger := utils.NewLogger("error", "text")

	sizes := []int{100, 1000, 3600}
	finders := []check.DuplicateFinder{
		check.NewMemoryDuplicateFinder(),
		check.NewSQLiteDuplicateFinder(logger),
	}

	for _, finder := range finders {
		for _, n := range sizes {
			text := generateLog(n, 42)

			opts := check.DefaultOptions()
			opts.Finder = finder
			checker := check.NewChecker(opts, logger)

			b.Run(fmt.Sprintf("%s/Fixes%d", finder.Name(), n), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := checker.Run(context.Background(), text); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkDerivation только вычислительные проходы без разбора
func BenchmarkDerivation(b *testing.B) {
	logger := utils.NewLogger("error", "text")
	parsed, err := parser.NewParser(logger, parser.Options{}).ParseText(generateLog(3600, 7))
	if err != nil {
		b.Fatal(err)
	}
	classifier := check.NewClassifier(check.DefaultThresholds())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		changes := check.DeriveChanges(check.DeriveMovement(parsed.Fixes))
		_, _ = classifier.ClassifyAll(changes)
	}
}
