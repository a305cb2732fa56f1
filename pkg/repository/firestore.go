package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	topicCollection    = "generated_topics"
	snapshotCollection = "trend_snapshots"
	stateCollection    = "state"
	rotationDoc        = "rotation"
	brainDoc           = "brain"
)

// firestoreRepo implements Repository on Firestore, for deployments where
// multiple invocations need the store to serialize access.
type firestoreRepo struct {
	client *firestore.Client
}

// NewFirestore creates a Firestore-backed repository.
func NewFirestore(ctx context.Context, projectID, databaseID string) (Repository, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}
	return &firestoreRepo{client: client}, nil
}

func (r *firestoreRepo) LoadTopicHistory(ctx context.Context) ([]model.GeneratedTopic, error) {
	iter := r.client.Collection(topicCollection).OrderBy("generatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var topics []model.GeneratedTopic
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate topic history")
		}

		var topic model.GeneratedTopic
		if err := doc.DataTo(&topic); err != nil {
			return nil, goerr.Wrap(err, "failed to decode topic", goerr.V("doc", doc.Ref.ID))
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

func (r *firestoreRepo) AppendTopicHistory(ctx context.Context, topic model.GeneratedTopic) error {
	if _, _, err := r.client.Collection(topicCollection).Add(ctx, topic); err != nil {
		return goerr.Wrap(err, "failed to append topic history", goerr.V("title", topic.Title))
	}
	return nil
}

func (r *firestoreRepo) ClearTopicHistory(ctx context.Context) error {
	iter := r.client.Collection(topicCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate topic history for clear")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete topic", goerr.V("doc", doc.Ref.ID))
		}
	}
}

// getDoc fetches one document into v; a missing document reports ok=false.
func (r *firestoreRepo) getDoc(ctx context.Context, collection, id string, v any) (bool, error) {
	doc, err := r.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get document",
			goerr.V("collection", collection), goerr.V("doc", id))
	}
	if err := doc.DataTo(v); err != nil {
		return false, goerr.Wrap(err, "failed to decode document",
			goerr.V("collection", collection), goerr.V("doc", id))
	}
	return true, nil
}

func (r *firestoreRepo) setDoc(ctx context.Context, collection, id string, v any) error {
	if _, err := r.client.Collection(collection).Doc(id).Set(ctx, v); err != nil {
		return goerr.Wrap(err, "failed to set document",
			goerr.V("collection", collection), goerr.V("doc", id))
	}
	return nil
}

func (r *firestoreRepo) LoadRotationState(ctx context.Context) (*model.RotationState, error) {
	state := model.NewRotationState()
	ok, err := r.getDoc(ctx, stateCollection, rotationDoc, state)
	if err != nil {
		return nil, err
	}
	if ok && state.TopicIndexes == nil {
		state.TopicIndexes = map[model.Category]int{}
	}
	return state, nil
}

func (r *firestoreRepo) SaveRotationState(ctx context.Context, state *model.RotationState) error {
	return r.setDoc(ctx, stateCollection, rotationDoc, state)
}

func (r *firestoreRepo) LoadBrain(ctx context.Context) (*model.AgentBrain, error) {
	brain := model.NewAgentBrain()
	ok, err := r.getDoc(ctx, stateCollection, brainDoc, brain)
	if err != nil {
		return nil, err
	}
	if ok && brain.ProductCategories == nil {
		brain.ProductCategories = map[string]model.ProductCategory{}
	}
	return brain, nil
}

func (r *firestoreRepo) SaveBrain(ctx context.Context, brain *model.AgentBrain) error {
	return r.setDoc(ctx, stateCollection, brainDoc, brain)
}

func (r *firestoreRepo) LoadTrendSnapshot(ctx context.Context, date string) (*model.TrendSnapshot, error) {
	var snapshot model.TrendSnapshot
	ok, err := r.getDoc(ctx, snapshotCollection, date, &snapshot)
	if err != nil || !ok {
		return nil, err
	}
	return &snapshot, nil
}

func (r *firestoreRepo) SaveTrendSnapshot(ctx context.Context, snapshot *model.TrendSnapshot) error {
	if snapshot.Date == "" {
		return goerr.New("snapshot date is required")
	}
	return r.setDoc(ctx, snapshotCollection, snapshot.Date, snapshot)
}
