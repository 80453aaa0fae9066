package domain

// DailyGoal tracks progress against a per-day study target.
// Current is clamped to zero or above on every update; Target is unconstrained.
type DailyGoal struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// DefaultDailyGoal returns the goal a fresh session starts with.
func DefaultDailyGoal() DailyGoal {
	return DailyGoal{Current: 0, Target: 4}
}

// DefaultCategories returns the fixed category set a fresh session starts with.
func DefaultCategories() []string {
	return []string{"Computer Science", "Mathematics", "General"}
}

// Snapshot is the unit of persistence: the full planner state for one user,
// read and written atomically as a single remote document.
type Snapshot struct {
	Tasks      []Task    `json:"tasks"`
	Categories []string  `json:"categories"`
	DailyGoal  DailyGoal `json:"dailyGoal"`
}

// DefaultSnapshot returns the state a first-ever session starts with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Tasks:      []Task{},
		Categories: DefaultCategories(),
		DailyGoal:  DefaultDailyGoal(),
	}
}
