package repository

import (
	"context"

	"github.com/minekvitteringer/skribent/pkg/model"
)

// Repository persists the pipeline's shared state: the append-only
// generated-topic log, the rotation cursors, the agent brain, and dated
// trend snapshots. Implementations must return zero-value state (not an
// error) when a record does not exist yet, so a fresh deployment starts
// clean without any setup step.
type Repository interface {
	// LoadTopicHistory returns every generated topic, oldest first
	LoadTopicHistory(ctx context.Context) ([]model.GeneratedTopic, error)

	// AppendTopicHistory adds one record to the generated-topic log
	AppendTopicHistory(ctx context.Context, topic model.GeneratedTopic) error

	// ClearTopicHistory drops the whole log. Testing and explicit resets only.
	ClearTopicHistory(ctx context.Context) error

	// LoadRotationState returns the rotation cursors
	LoadRotationState(ctx context.Context) (*model.RotationState, error)

	// SaveRotationState stores the rotation cursors
	SaveRotationState(ctx context.Context, state *model.RotationState) error

	// LoadBrain returns the agent brain
	LoadBrain(ctx context.Context) (*model.AgentBrain, error)

	// SaveBrain stores the agent brain
	SaveBrain(ctx context.Context, brain *model.AgentBrain) error

	// LoadTrendSnapshot returns the snapshot for a YYYY-MM-DD date, or
	// nil when none was persisted for that date
	LoadTrendSnapshot(ctx context.Context, date string) (*model.TrendSnapshot, error)

	// SaveTrendSnapshot stores a dated snapshot
	SaveTrendSnapshot(ctx context.Context, snapshot *model.TrendSnapshot) error
}
