package notesdb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

const (
	DefaultDatabaseName = "student-notes"
	NotesCollectionName = "notes"
)

var (
	PingAttempts = 5
	PingInterval = 2 * time.Second
	PingTimeout  = 5 * time.Second
)

// Ensure MongoStore implements the interface.
var _ Store = (*MongoStore)(nil)

type noteDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *noteDocument) toNote() *notes.Note {
	return &notes.Note{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type MongoStore struct {
	coll *mongo.Collection
}

// OpenMongo connects to the deployment named by uri and uses the database in
// its path (DefaultDatabaseName if none). An unreachable server is logged but
// not returned as an error: requests fail until it becomes reachable.
func OpenMongo(ctx context.Context, uri string, log *zap.SugaredLogger) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo URI: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabaseName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := pingWithRetry(ctx, client, log); err != nil {
		log.Errorw("mongo connection error; continuing without a verified connection",
			"database", dbName,
			"err", err)
	} else {
		log.Infow("mongo connected successfully",
			"database", dbName)
	}

	return NewMongoStore(client.Database(dbName).Collection(NotesCollectionName)), nil
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) ListNotes(ctx context.Context) ([]*notes.Note, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []noteDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*notes.Note, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toNote())
	}
	return result, nil
}

func (s *MongoStore) InsertNote(ctx context.Context, title, description string) (*notes.Note, error) {
	doc := &noteDocument{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		CreatedAt:   now(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toNote(), nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}

func pingWithRetry(ctx context.Context, client *mongo.Client, log *zap.SugaredLogger) error {
	var err error
	for i := 0; i < PingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
		err = client.Ping(pingCtx, nil)
		cancel()
		if err == nil {
			return nil
		}
		log.Warnw("could not reach mongo",
			"attempt", i+1,
			"err", err)
		if i < PingAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(PingInterval):
			}
		}
	}
	return err
}
