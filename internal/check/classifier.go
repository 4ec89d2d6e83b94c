package check

import (
	"strings"

	"github.com/flybeeper/gps-checker/internal/models"
)

// Имена правил (метки метрик и ключи статистики)
const (
	RuleLargeSpeedChange     = "large_speed_change"
	RuleLargeDirectionChange = "large_direction_change"
	RuleNoMovement           = "no_movement"
	RuleDataGap              = "data_gap"
)

// Rule правило классификатора
type Rule struct {
	Name          string
	Label         string
	Color         models.Color
	SizeIncrement float64
	Match         func(rec models.ChangeRecord, t Thresholds) bool
}

// Rules правила в порядке применения. Срабатывают независимо; цвет задает
// последнее сработавшее правило, размер отметки суммируется.
var Rules = []Rule{
	{
		Name:          RuleLargeSpeedChange,
		Label:         "large speed change",
		Color:         ColorLargeSpeedChange,
		SizeIncrement: 10,
		Match: func(rec models.ChangeRecord, t Thresholds) bool {
			if rec.Change == nil || rec.Change.AccelerationG == nil {
				return false
			}
			g := *rec.Change.AccelerationG
			return g > t.MaxAccelerationG || g < -t.MaxAccelerationG
		},
	},
	{
		Name:          RuleLargeDirectionChange,
		Label:         "large direction change",
		Color:         ColorLargeDirectionChange,
		SizeIncrement: 10,
		Match: func(rec models.ChangeRecord, t Thresholds) bool {
			return rec.Change != nil && rec.Change.BearingChangeDegrees > t.MaxBearingChange
		},
	},
	{
		Name:          RuleNoMovement,
		Label:         "no movement",
		Color:         ColorNoMovement,
		SizeIncrement: 5,
		Match: func(rec models.ChangeRecord, _ Thresholds) bool {
			return rec.Movement != nil && rec.Movement.DistanceMeters == 0
		},
	},
	{
		Name:          RuleDataGap,
		Label:         "data gap",
		Color:         ColorDataGap,
		SizeIncrement: 20,
		Match: func(rec models.ChangeRecord, t Thresholds) bool {
			return rec.Movement != nil && rec.Movement.ElapsedSeconds > t.MaxElapsedSeconds
		},
	},
}

// Classifier классификатор аномалий
type Classifier struct {
	thresholds Thresholds
	rules      []Rule
}

// NewClassifier создает классификатор с заданными порогами
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{
		thresholds: thresholds,
		rules:      Rules,
	}
}

// Thresholds возвращает пороги классификатора
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify применяет правила к одной записи
func (c *Classifier) Classify(rec models.ChangeRecord) models.AnnotatedRecord {
	ann, _ := c.classify(rec)
	return models.AnnotatedRecord{ChangeRecord: rec, Annotation: ann}
}

func (c *Classifier) classify(rec models.ChangeRecord) (models.Annotation, []string) {
	ann := models.Annotation{
		Color:       ColorNeutral,
		MarkerSize:  BaseMarkerSize,
		Description: []string{},
	}
	var fired []string

	for _, rule := range c.rules {
		if !rule.Match(rec, c.thresholds) {
			continue
		}
		ann.ErrorCount++
		ann.Color = rule.Color
		ann.MarkerSize += rule.SizeIncrement
		ann.Description = append(ann.Description, rule.Label)
		fired = append(fired, rule.Name)
	}

	return ann, fired
}

// ClassifyAll классифицирует записи и возвращает количество срабатываний по правилам
func (c *Classifier) ClassifyAll(records []models.ChangeRecord) ([]models.AnnotatedRecord, map[string]int) {
	out := make([]models.AnnotatedRecord, len(records))
	counts := make(map[string]int, len(c.rules))

	for i, rec := range records {
		ann, fired := c.classify(rec)
		out[i] = models.AnnotatedRecord{ChangeRecord: rec, Annotation: ann}
		for _, name := range fired {
			counts[name]++
		}
	}

	return out, counts
}

// DescriptionText описание нарушений одной строкой
func DescriptionText(ann models.Annotation) string {
	return strings.Join(ann.Description, ", ")
}
