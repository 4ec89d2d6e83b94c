package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/flybeeper/gps-checker/internal/geo"
	"github.com/flybeeper/gps-checker/internal/metrics"
	"github.com/flybeeper/gps-checker/internal/models"
	"github.com/flybeeper/gps-checker/internal/parser"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

// Report результат проверки журнала GPS
type Report struct {
	RunID      string                   `json:"run_id"`
	Parse      parser.Stats             `json:"parse"`
	Records    []models.AnnotatedRecord `json:"records"`
	Anomalies  []models.AnnotatedRecord `json:"anomalies"`
	MapPoints  []models.MapPoint        `json:"map_points"`
	Duplicates []models.DuplicateGroup  `json:"duplicates"`
	Summary    Summary                  `json:"summary"`
	Thresholds Thresholds               `json:"thresholds"`
}

// Options настройки проверки
type Options struct {
	Thresholds       Thresholds
	Parser           parser.Options
	Finder           DuplicateFinder
	GeohashPrecision int
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		Thresholds:       DefaultThresholds(),
		Finder:           NewMemoryDuplicateFinder(),
		GeohashPrecision: geo.DefaultPrecision,
	}
}

// Checker последовательно применяет этапы проверки: разбор, движение,
// изменения, классификация. Поиск дублей работает по результату разбора.
type Checker struct {
	parser           *parser.Parser
	classifier       *Classifier
	finder           DuplicateFinder
	geohashPrecision int
	logger           *utils.Logger
}

// NewChecker создает проверку трека
func NewChecker(options Options, logger *utils.Logger) *Checker {
	if options.Finder == nil {
		options.Finder = NewMemoryDuplicateFinder()
	}
	if options.GeohashPrecision <= 0 {
		options.GeohashPrecision = geo.DefaultPrecision
	}
	if options.Thresholds == (Thresholds{}) {
		options.Thresholds = DefaultThresholds()
	}

	return &Checker{
		parser:           parser.NewParser(logger, options.Parser),
		classifier:       NewClassifier(options.Thresholds),
		finder:           options.Finder,
		geohashPrecision: options.GeohashPrecision,
		logger:           logger,
	}
}

// Thresholds возвращает действующие пороги классификатора
func (c *Checker) Thresholds() Thresholds {
	return c.classifier.Thresholds()
}

// Run проверяет текст журнала целиком
func (c *Checker) Run(ctx context.Context, text string) (*Report, error) {
	start := time.Now()
	parsed, err := c.parser.ParseText(text)
	if err != nil {
		c.observeFailure(err)
		return nil, err
	}
	return c.analyze(ctx, parsed, start)
}

// RunReader проверяет журнал, читая его из reader
func (c *Checker) RunReader(ctx context.Context, r io.Reader) (*Report, error) {
	start := time.Now()
	parsed, err := c.parser.ParseReader(r)
	if err != nil {
		c.observeFailure(err)
		return nil, err
	}
	return c.analyze(ctx, parsed, start)
}

// Analyze проверяет уже разобранный журнал
func (c *Checker) Analyze(ctx context.Context, parsed *parser.Result) (*Report, error) {
	if parsed == nil || len(parsed.Fixes) == 0 {
		c.observeFailure(parser.ErrNoValidData)
		return nil, parser.ErrNoValidData
	}
	return c.analyze(ctx, parsed, time.Now())
}

func (c *Checker) analyze(ctx context.Context, parsed *parser.Result, start time.Time) (*Report, error) {
	runID := uuid.NewString()
	logger := c.logger.WithField("run_id", runID)

	stageStart := time.Now()
	movement := DeriveMovement(parsed.Fixes)
	changes := DeriveChanges(movement)
	records, ruleCounts := c.classifier.ClassifyAll(changes)

	logger.WithField("records", len(records)).
		WithField("duration_ms", time.Since(stageStart).Milliseconds()).
		Debug("Records derived and classified")

	stageStart = time.Now()
	duplicates, err := c.finder.FindDuplicates(ctx, parsed.Fixes)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		logger.WithField("finder", c.finder.Name()).
			WithError(err).
			Error("Duplicate search failed")
		return nil, fmt.Errorf("duplicate search (%s): %w", c.finder.Name(), err)
	}
	for i := range duplicates {
		duplicates[i].Geohash = duplicates[i].GeoPoint.Geohash(c.geohashPrecision)
	}

	logger.WithField("finder", c.finder.Name()).
		WithField("groups", len(duplicates)).
		WithField("duration_ms", time.Since(stageStart).Milliseconds()).
		Debug("Duplicate search completed")

	report := &Report{
		RunID:      runID,
		Parse:      parsed.Stats,
		Records:    records,
		Anomalies:  Anomalies(records),
		MapPoints:  MapPoints(records, c.geohashPrecision),
		Duplicates: duplicates,
		Summary:    Summarize(records, duplicates, ruleCounts),
		Thresholds: c.classifier.Thresholds(),
	}

	duration := time.Since(start)
	metrics.RunsTotal.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(duration.Seconds())
	metrics.FixesPerRun.Observe(float64(len(records)))
	metrics.DuplicateGroupsTotal.Add(float64(len(duplicates)))
	for rule, n := range ruleCounts {
		metrics.AnomaliesTotal.WithLabelValues(rule).Add(float64(n))
	}

	logger.WithField("fixes", len(records)).
		WithField("dropped_lines", parsed.Stats.Dropped).
		WithField("anomalies", report.Summary.Anomalies).
		WithField("duplicate_groups", len(duplicates)).
		WithField("duration_ms", duration.Milliseconds()).
		Info("Track check completed")

	return report, nil
}

func (c *Checker) observeFailure(err error) {
	if errors.Is(err, parser.ErrNoValidData) {
		metrics.RunsTotal.WithLabelValues("no_valid_data").Inc()
		c.logger.WithError(err).Warn("Track check rejected")
		return
	}
	metrics.RunsTotal.WithLabelValues("error").Inc()
	c.logger.WithError(err).Error("Track check failed")
}

// Anomalies возвращает записи, на которых сработало хотя бы одно правило
func Anomalies(records []models.AnnotatedRecord) []models.AnnotatedRecord {
	out := make([]models.AnnotatedRecord, 0)
	for _, rec := range records {
		if rec.HasErrors() {
			out = append(out, rec)
		}
	}
	return out
}

// MapPoints точки для карты: время, координаты, цвет и размер отметки
func MapPoints(records []models.AnnotatedRecord, precision int) []models.MapPoint {
	points := make([]models.MapPoint, len(records))
	for i, rec := range records {
		points[i] = models.MapPoint{
			Time:     rec.Time,
			GeoPoint: rec.GeoPoint,
			Color:    rec.Color,
			Size:     rec.MarkerSize,
			Geohash:  rec.Geohash(precision),
		}
	}
	return points
}

// Run проверяет текст журнала с настройками по умолчанию
func Run(text string) (*Report, error) {
	return NewChecker(DefaultOptions(), utils.DefaultLogger()).Run(context.Background(), text)
}
