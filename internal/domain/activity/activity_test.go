package activity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	runnerID := uuid.New()
	startedAt := time.Date(2026, 5, 10, 7, 30, 0, 0, time.UTC)

	t.Run("creates valid activity", func(t *testing.T) {
		act, err := NewActivity(runnerID, "Morning run", SportRun, 5000, 1500, startedAt)

		require.NoError(t, err)
		assert.Equal(t, runnerID, act.RunnerID)
		assert.Equal(t, SportRun, act.Sport)
		assert.Equal(t, float64(5000), act.DistanceMeters)
		assert.Nil(t, act.TrackKey)
	})

	t.Run("fails with invalid inputs", func(t *testing.T) {
		_, err := NewActivity(uuid.Nil, "Morning run", SportRun, 5000, 1500, startedAt)
		assert.Error(t, err)

		_, err = NewActivity(runnerID, "", SportRun, 5000, 1500, startedAt)
		assert.Error(t, err)

		_, err = NewActivity(runnerID, "Morning run", Sport("SWIM"), 5000, 1500, startedAt)
		assert.Error(t, err)

		_, err = NewActivity(runnerID, "Morning run", SportRun, -1, 1500, startedAt)
		assert.Error(t, err)

		_, err = NewActivity(runnerID, "Morning run", SportRun, 5000, 0, startedAt)
		assert.Error(t, err)

		_, err = NewActivity(runnerID, "Morning run", SportRun, 5000, 1500, time.Time{})
		assert.Error(t, err)
	})
}

func TestAveragePace(t *testing.T) {
	runnerID := uuid.New()
	startedAt := time.Now()

	t.Run("computes pace per km", func(t *testing.T) {
		act, err := NewActivity(runnerID, "Tempo", SportRun, 10000, 3000, startedAt)
		require.NoError(t, err)

		assert.InDelta(t, 300.0, act.AveragePaceSecsPerKm(), 0.001)
	})

	t.Run("returns zero for zero distance", func(t *testing.T) {
		act, err := NewActivity(runnerID, "Treadmill", SportRun, 0, 1800, startedAt)
		require.NoError(t, err)

		assert.Equal(t, 0.0, act.AveragePaceSecsPerKm())
	})
}
