package model

import "time"

// maxCategoryHistory caps the rotation pick log.
const maxCategoryHistory = 100

// CategoryPick is one timestamped rotation decision.
type CategoryPick struct {
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// RotationState holds the round-robin cursors over categories, stores and
// per-category topic lists. Single mutable record, read-modify-write.
type RotationState struct {
	CurrentIndex    int              `json:"currentIndex"`
	LastCategory    Category         `json:"lastCategory,omitempty"`
	CategoryHistory []CategoryPick   `json:"categoryHistory"`
	StoreIndex      int              `json:"storeIndex"`
	TopicIndexes    map[Category]int `json:"topicIndexes"`
}

// NewRotationState returns the zero rotation state used on first run.
func NewRotationState() *RotationState {
	return &RotationState{
		TopicIndexes: map[Category]int{},
	}
}

// RecordPick appends a category pick and trims history to the cap.
func (s *RotationState) RecordPick(category Category, at time.Time) {
	s.LastCategory = category
	s.CategoryHistory = append(s.CategoryHistory, CategoryPick{
		Category:  category,
		Timestamp: at,
	})
	if len(s.CategoryHistory) > maxCategoryHistory {
		s.CategoryHistory = s.CategoryHistory[len(s.CategoryHistory)-maxCategoryHistory:]
	}
}
