package sync

import (
	"encoding/json"

	"scholarsync/internal/domain"
)

// Document field names as stored in the remote document.
const (
	fieldTasks      = "tasks"
	fieldCategories = "categories"
	fieldDailyGoal  = "dailyGoal"
)

// EncodeSnapshot converts a planner snapshot into the document shape the
// remote store holds.
func EncodeSnapshot(snap domain.Snapshot) (map[string]interface{}, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeSnapshot converts a remote document into a planner snapshot. Each
// field is decoded independently; a missing or malformed field falls back to
// its type default (empty task list, default category set, default goal)
// rather than failing the whole snapshot.
func DecodeSnapshot(doc map[string]interface{}) domain.Snapshot {
	snap := domain.DefaultSnapshot()
	if doc == nil {
		return snap
	}

	if raw, ok := reencode(doc[fieldTasks]); ok {
		var tasks []domain.Task
		if json.Unmarshal(raw, &tasks) == nil && tasks != nil {
			snap.Tasks = tasks
		}
	}

	if raw, ok := reencode(doc[fieldCategories]); ok {
		var categories []string
		if json.Unmarshal(raw, &categories) == nil && categories != nil {
			snap.Categories = categories
		}
	}

	if raw, ok := reencode(doc[fieldDailyGoal]); ok {
		var goal domain.DailyGoal
		if json.Unmarshal(raw, &goal) == nil {
			if goal.Current < 0 {
				goal.Current = 0
			}
			snap.DailyGoal = goal
		}
	}

	return snap
}

// reencode marshals a decoded document field back to JSON so it can be
// unmarshalled into its typed form. Absent or null fields report false.
func reencode(v interface{}) ([]byte, bool) {
	if v == nil {
		return nil, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}
