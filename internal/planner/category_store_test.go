package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scholarsync/internal/domain"
)

func TestCategoryStore_Add(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		added    bool
		expected []string
	}{
		{
			name:     "should append a new label",
			input:    "Physics",
			added:    true,
			expected: []string{"Computer Science", "Mathematics", "General", "Physics"},
		},
		{
			name:     "should trim surrounding whitespace",
			input:    "  Physics  ",
			added:    true,
			expected: []string{"Computer Science", "Mathematics", "General", "Physics"},
		},
		{
			name:     "should ignore a duplicate",
			input:    "Mathematics",
			added:    false,
			expected: domain.DefaultCategories(),
		},
		{
			name:     "should ignore a blank label",
			input:    "   ",
			added:    false,
			expected: domain.DefaultCategories(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewCategoryStore()

			assert.Equal(t, tt.added, store.Add(tt.input))
			assert.Equal(t, tt.expected, store.List())
		})
	}
}

func TestCategoryStore_Remove(t *testing.T) {
	t.Run("should remove an existing label", func(t *testing.T) {
		store := NewCategoryStore()

		assert.True(t, store.Remove("Mathematics"))
		assert.Equal(t, []string{"Computer Science", "General"}, store.List())
		assert.False(t, store.Contains("Mathematics"))
	})

	t.Run("should ignore an unknown label", func(t *testing.T) {
		store := NewCategoryStore()

		assert.False(t, store.Remove("Astronomy"))
		assert.Equal(t, domain.DefaultCategories(), store.List())
	})
}

func TestCategoryStore_Reset(t *testing.T) {
	t.Run("should restore the default set", func(t *testing.T) {
		store := NewCategoryStore()
		store.Add("Physics")
		store.Remove("General")

		store.Reset()

		assert.Equal(t, domain.DefaultCategories(), store.List())
	})
}

func TestCategoryStore_List(t *testing.T) {
	t.Run("should return a copy", func(t *testing.T) {
		store := NewCategoryStore()

		listed := store.List()
		listed[0] = "Tampered"

		assert.Equal(t, domain.DefaultCategories(), store.List())
	})
}
