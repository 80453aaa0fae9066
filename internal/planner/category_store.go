package planner

import (
	"strings"

	"scholarsync/internal/domain"
)

// CategoryStore is the in-memory set of category labels, kept in insertion
// order for stable rendering. Removing a category never touches tasks that
// reference it.
type CategoryStore struct {
	categories []string
}

// NewCategoryStore creates a category store holding the default set
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: domain.DefaultCategories()}
}

// Add appends a trimmed, non-empty label; duplicates and blanks are ignored
func (s *CategoryStore) Add(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || s.Contains(trimmed) {
		return false
	}
	s.categories = append(s.categories, trimmed)
	return true
}

// Remove deletes the label if present
func (s *CategoryStore) Remove(name string) bool {
	for i, c := range s.categories {
		if c == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the label is present
func (s *CategoryStore) Contains(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

// List returns a copy of the labels in insertion order
func (s *CategoryStore) List() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Replace swaps the whole set, used when a remote snapshot arrives
func (s *CategoryStore) Replace(categories []string) {
	s.categories = make([]string, len(categories))
	copy(s.categories, categories)
}

// Reset restores the fixed default set
func (s *CategoryStore) Reset() {
	s.categories = domain.DefaultCategories()
}
