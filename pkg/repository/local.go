package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

const (
	topicsFile   = "generated-topics.json"
	rotationFile = "rotation-state.json"
	brainFile    = "agent-brain.json"
	trendsDir    = "trends"
)

// localRepo stores every record as a JSON file under a data directory.
// One process at a time; serialization across processes is a deployment
// concern.
type localRepo struct {
	dir string
}

// NewLocal creates a file-backed repository rooted at dir. The directory
// is created on demand; a missing or unreadable file yields fresh state.
func NewLocal(dir string) (Repository, error) {
	if dir == "" {
		return nil, goerr.New("data directory is required")
	}
	return &localRepo{dir: dir}, nil
}

func (r *localRepo) readJSON(ctx context.Context, path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to read state file", goerr.V("path", path))
	}

	if err := json.Unmarshal(raw, v); err != nil {
		// A corrupt state file must not kill the pipeline. Start fresh
		// and leave the broken file in place for inspection.
		logging.From(ctx).Warn("corrupt state file, starting fresh",
			"path", path, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *localRepo) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create data directory", goerr.V("path", path))
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal state", goerr.V("path", path))
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write state file", goerr.V("path", path))
	}
	return nil
}

func (r *localRepo) LoadTopicHistory(ctx context.Context) ([]model.GeneratedTopic, error) {
	var topics []model.GeneratedTopic
	if _, err := r.readJSON(ctx, filepath.Join(r.dir, topicsFile), &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *localRepo) AppendTopicHistory(ctx context.Context, topic model.GeneratedTopic) error {
	topics, err := r.LoadTopicHistory(ctx)
	if err != nil {
		return err
	}
	topics = append(topics, topic)
	return r.writeJSON(filepath.Join(r.dir, topicsFile), topics)
}

func (r *localRepo) ClearTopicHistory(ctx context.Context) error {
	return r.writeJSON(filepath.Join(r.dir, topicsFile), []model.GeneratedTopic{})
}

func (r *localRepo) LoadRotationState(ctx context.Context) (*model.RotationState, error) {
	state := model.NewRotationState()
	ok, err := r.readJSON(ctx, filepath.Join(r.dir, rotationFile), state)
	if err != nil {
		return nil, err
	}
	if ok && state.TopicIndexes == nil {
		state.TopicIndexes = map[model.Category]int{}
	}
	return state, nil
}

func (r *localRepo) SaveRotationState(ctx context.Context, state *model.RotationState) error {
	return r.writeJSON(filepath.Join(r.dir, rotationFile), state)
}

func (r *localRepo) LoadBrain(ctx context.Context) (*model.AgentBrain, error) {
	brain := model.NewAgentBrain()
	ok, err := r.readJSON(ctx, filepath.Join(r.dir, brainFile), brain)
	if err != nil {
		return nil, err
	}
	if ok && brain.ProductCategories == nil {
		brain.ProductCategories = map[string]model.ProductCategory{}
	}
	return brain, nil
}

func (r *localRepo) SaveBrain(ctx context.Context, brain *model.AgentBrain) error {
	return r.writeJSON(filepath.Join(r.dir, brainFile), brain)
}

func (r *localRepo) LoadTrendSnapshot(ctx context.Context, date string) (*model.TrendSnapshot, error) {
	var snapshot model.TrendSnapshot
	ok, err := r.readJSON(ctx, filepath.Join(r.dir, trendsDir, date+".json"), &snapshot)
	if err != nil || !ok {
		return nil, err
	}
	return &snapshot, nil
}

func (r *localRepo) SaveTrendSnapshot(ctx context.Context, snapshot *model.TrendSnapshot) error {
	if snapshot.Date == "" {
		return goerr.New("snapshot date is required")
	}
	return r.writeJSON(filepath.Join(r.dir, trendsDir, snapshot.Date+".json"), snapshot)
}
