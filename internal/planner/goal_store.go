package planner

import "scholarsync/internal/domain"

// GoalStore holds the session's daily study goal. Current is clamped to
// zero or above on every update; Target is unconstrained.
type GoalStore struct {
	goal domain.DailyGoal
}

// NewGoalStore creates a goal store holding the default goal
func NewGoalStore() *GoalStore {
	return &GoalStore{goal: domain.DefaultDailyGoal()}
}

// Get returns the current goal
func (s *GoalStore) Get() domain.DailyGoal {
	return s.goal
}

// SetTarget updates the goal target
func (s *GoalStore) SetTarget(target int) {
	s.goal.Target = target
}

// SetCurrent updates goal progress, clamping negatives to zero
func (s *GoalStore) SetCurrent(current int) {
	if current < 0 {
		current = 0
	}
	s.goal.Current = current
}

// Replace swaps the whole goal, used when a remote snapshot arrives
func (s *GoalStore) Replace(goal domain.DailyGoal) {
	if goal.Current < 0 {
		goal.Current = 0
	}
	s.goal = goal
}

// Reset restores the default goal
func (s *GoalStore) Reset() {
	s.goal = domain.DefaultDailyGoal()
}
