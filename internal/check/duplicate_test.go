package check

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flybeeper/gps-checker/internal/models"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

func duplicateFinders() []DuplicateFinder {
	return []DuplicateFinder{
		NewMemoryDuplicateFinder(),
		NewSQLiteDuplicateFinder(utils.NewLogger("info", "text")),
	}
}

func TestDuplicateFinders(t *testing.T) {
	a := models.GeoPoint{Latitude: 35.658083, Longitude: 139.7413333}
	b := models.GeoPoint{Latitude: 35.658333, Longitude: 139.7415277}
	c := models.GeoPoint{Latitude: 35.659, Longitude: 139.742}

	fixes := []models.Fix{
		{Time: models.NewTimeOfDay(10, 0, 0), GeoPoint: b},
		{Time: models.NewTimeOfDay(10, 0, 1), GeoPoint: a},
		{Time: models.NewTimeOfDay(10, 0, 2), GeoPoint: c},
		{Time: models.NewTimeOfDay(10, 0, 3), GeoPoint: a},
		{Time: models.NewTimeOfDay(10, 0, 4), GeoPoint: b},
		{Time: models.NewTimeOfDay(10, 0, 5), GeoPoint: a},
	}

	want := []models.DuplicateGroup{
		{
			GeoPoint: b,
			Count:    2,
			Members: []models.DuplicateMember{
				{Index: 0, Time: models.NewTimeOfDay(10, 0, 0)},
				{Index: 4, Time: models.NewTimeOfDay(10, 0, 4)},
			},
		},
		{
			GeoPoint: a,
			Count:    3,
			Members: []models.DuplicateMember{
				{Index: 1, Time: models.NewTimeOfDay(10, 0, 1)},
				{Index: 3, Time: models.NewTimeOfDay(10, 0, 3)},
				{Index: 5, Time: models.NewTimeOfDay(10, 0, 5)},
			},
		},
	}

	for _, finder := range duplicateFinders() {
		t.Run(finder.Name(), func(t *testing.T) {
			got, err := finder.FindDuplicates(context.Background(), fixes)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("duplicate groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDuplicateFinders_NoDuplicates(t *testing.T) {
	fixes := []models.Fix{
		fixAt("10:00:00", 35.0, 139.0),
		fixAt("10:00:01", 35.1, 139.0),
	}

	for _, finder := range duplicateFinders() {
		t.Run(finder.Name(), func(t *testing.T) {
			got, err := finder.FindDuplicates(context.Background(), fixes)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)

			got, err = finder.FindDuplicates(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestDuplicateFinders_ExactMatchOnly(t *testing.T) {
	// Точки в пределах сантиметра, но с разными значениями не группируются
	fixes := []models.Fix{
		fixAt("10:00:00", 35.0, 139.0),
		fixAt("10:00:01", 35.0000000001, 139.0),
	}

	for _, finder := range duplicateFinders() {
		t.Run(finder.Name(), func(t *testing.T) {
			got, err := finder.FindDuplicates(context.Background(), fixes)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestSQLiteDuplicateFinder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finder := NewSQLiteDuplicateFinder(utils.NewLogger("info", "text"))
	_, err := finder.FindDuplicates(ctx, []models.Fix{fixAt("10:00:00", 1, 1)})
	assert.Error(t, err)
}
