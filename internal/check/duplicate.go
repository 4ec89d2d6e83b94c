package check

import (
	"context"

	"github.com/flybeeper/gps-checker/internal/models"
)

// MemoryDuplicateFinder группирует точки по точному совпадению координат в памяти
type MemoryDuplicateFinder struct{}

// NewMemoryDuplicateFinder создает поиск дублей в памяти
func NewMemoryDuplicateFinder() *MemoryDuplicateFinder {
	return &MemoryDuplicateFinder{}
}

// FindDuplicates реализует DuplicateFinder. Сравнение без допуска: точки,
// совпадающие на местности, но округленные по-разному, не группируются.
func (f *MemoryDuplicateFinder) FindDuplicates(_ context.Context, fixes []models.Fix) ([]models.DuplicateGroup, error) {
	return groupDuplicates(fixes, func(i int) int { return i }), nil
}

// Name возвращает имя реализации
func (f *MemoryDuplicateFinder) Name() string {
	return "memory"
}

// groupDuplicates группирует точки в порядке первого появления.
// index переводит позицию в срезе в позицию в журнале.
func groupDuplicates(fixes []models.Fix, index func(int) int) []models.DuplicateGroup {
	positions := make(map[models.GeoPoint]int)
	var groups []models.DuplicateGroup

	for i, fix := range fixes {
		pos, ok := positions[fix.GeoPoint]
		if !ok {
			pos = len(groups)
			positions[fix.GeoPoint] = pos
			groups = append(groups, models.DuplicateGroup{GeoPoint: fix.GeoPoint})
		}
		groups[pos].Members = append(groups[pos].Members, models.DuplicateMember{
			Index: index(i),
			Time:  fix.Time,
		})
		groups[pos].Count++
	}

	result := make([]models.DuplicateGroup, 0)
	for _, g := range groups {
		if g.Count > 1 {
			result = append(result, g)
		}
	}
	return result
}
