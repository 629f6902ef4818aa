package notesdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns assigned fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewMongoStore(mt.Coll)

		note, err := store.InsertNote(context.Background(), "Lecture", "Chapter 3")
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(note.ID))
		assert.Equal(mt, "Lecture", note.Title)
		assert.Equal(mt, "Chapter 3", note.Description)
		assert.False(mt, note.CreatedAt.IsZero())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("insert surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		store := NewMongoStore(mt.Coll)

		note, err := store.InsertNote(context.Background(), "Lecture", "Chapter 3")
		assert.Nil(mt, note)
		assert.ErrorContains(mt, err, "duplicate key error")
	})

	mt.Run("list decodes documents in server order", func(mt *mtest.T) {
		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		createdNewer := time.Date(2026, 10, 19, 14, 5, 0, 0, time.UTC)
		createdOlder := time.Date(2026, 10, 19, 14, 4, 0, 0, time.UTC)

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: newer},
				{Key: "title", Value: "C"},
				{Key: "description", Value: "third"},
				{Key: "createdAt", Value: createdNewer},
			},
			bson.D{
				{Key: "_id", Value: older},
				{Key: "title", Value: "B"},
				{Key: "description", Value: "second"},
				{Key: "createdAt", Value: createdOlder},
			},
		))
		store := NewMongoStore(mt.Coll)

		listed, err := store.ListNotes(context.Background())
		require.NoError(mt, err)
		require.Len(mt, listed, 2)
		assert.Equal(mt, newer.Hex(), listed[0].ID)
		assert.Equal(mt, "C", listed[0].Title)
		assert.True(mt, createdNewer.Equal(listed[0].CreatedAt))
		assert.Equal(mt, older.Hex(), listed[1].ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		sort, err := started.Command.LookupErr("sort")
		require.NoError(mt, err)
		keys, err := sort.Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "createdAt", keys[0].Key())
		assert.Equal(mt, "_id", keys[1].Key())
	})

	mt.Run("list of empty collection is empty, not nil", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewMongoStore(mt.Coll)

		listed, err := store.ListNotes(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, listed)
		assert.Empty(mt, listed)
	})

	mt.Run("list surfaces command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on student-notes",
		}))
		store := NewMongoStore(mt.Coll)

		listed, err := store.ListNotes(context.Background())
		assert.Nil(mt, listed)
		assert.ErrorContains(mt, err, "not authorized")
	})
}
