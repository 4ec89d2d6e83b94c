package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flybeeper/gps-checker/internal/models"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, map[string]int{})
	assert.Equal(t, 0, s.Fixes)
	assert.Nil(t, s.AvgSpeedKmh)
	assert.Nil(t, s.MaxSpeedKmh)
	assert.Nil(t, s.MaxAbsAccelerationG)
	assert.Equal(t, models.Bounds{}, s.Bounds)
}

func TestSummarize(t *testing.T) {
	fixes := []models.Fix{
		fixAt("10:00:00", 35.0, 139.0),
		fixAt("10:00:01", 35.0+1.0/3600, 139.0),
		fixAt("10:00:01", 35.0+1.0/3600, 139.0+1.0/3600),
		fixAt("10:00:03", 35.0+1.0/3600, 139.0+1.0/3600),
	}

	classifier := NewClassifier(DefaultThresholds())
	records, counts := classifier.ClassifyAll(DeriveChanges(DeriveMovement(fixes)))

	s := Summarize(records, nil, counts)
	assert.Equal(t, 4, s.Fixes)
	assert.Equal(t, 3, s.DurationSeconds)
	assert.Equal(t, 2, s.MaxDataGapSeconds)
	assert.Equal(t, 0, s.DuplicateGroups)

	// Скорость определена у второй и четвертой записи: 111.3 и 0 км/ч
	require.NotNil(t, s.AvgSpeedKmh)
	require.NotNil(t, s.MaxSpeedKmh)
	assert.InDelta(t, arcSecondMeters*3.6/2, *s.AvgSpeedKmh, 1e-6)
	assert.InDelta(t, arcSecondMeters*3.6, *s.MaxSpeedKmh, 1e-6)

	assert.Greater(t, s.TotalDistanceMeters, arcSecondMeters)

	assert.Equal(t, models.GeoPoint{Latitude: 35.0, Longitude: 139.0}, s.Bounds.Southwest)
	assert.Equal(t, models.GeoPoint{Latitude: 35.0 + 1.0/3600, Longitude: 139.0 + 1.0/3600}, s.Bounds.Northeast)
	assert.True(t, s.Bounds.Contains(records[2].GeoPoint))
}
