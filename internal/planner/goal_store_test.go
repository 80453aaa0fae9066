package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scholarsync/internal/domain"
)

func TestGoalStore(t *testing.T) {
	t.Run("should start with the default goal", func(t *testing.T) {
		store := NewGoalStore()
		assert.Equal(t, domain.DefaultDailyGoal(), store.Get())
	})

	t.Run("should update target and progress independently", func(t *testing.T) {
		store := NewGoalStore()

		store.SetTarget(6)
		store.SetCurrent(2)

		assert.Equal(t, domain.DailyGoal{Current: 2, Target: 6}, store.Get())
	})

	t.Run("should clamp negative progress to zero", func(t *testing.T) {
		store := NewGoalStore()
		store.SetCurrent(3)

		store.SetCurrent(-1)

		assert.Equal(t, 0, store.Get().Current)
	})

	t.Run("should clamp negative progress on replace", func(t *testing.T) {
		store := NewGoalStore()

		store.Replace(domain.DailyGoal{Current: -5, Target: 3})

		assert.Equal(t, domain.DailyGoal{Current: 0, Target: 3}, store.Get())
	})

	t.Run("should restore the default goal on reset", func(t *testing.T) {
		store := NewGoalStore()
		store.SetTarget(10)
		store.SetCurrent(7)

		store.Reset()

		assert.Equal(t, domain.DefaultDailyGoal(), store.Get())
	})
}
