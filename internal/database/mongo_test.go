package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type record struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Category string             `bson:"category"`
}

func TestStore_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewStore(mt.DB)

		id, err := store.Insert(context.Background(), "product", record{Title: "Tee", Category: "Tops"})

		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err, "id %q should be an ObjectID hex", id)
	})

	mt.Run("write error keeps raw message", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		store := NewStore(mt.DB)

		_, err := store.Insert(context.Background(), "product", record{Title: "Tee"})

		var storeErr *StoreError
		require.ErrorAs(mt, err, &storeErr)
		assert.Equal(mt, "insert", storeErr.Op)
		assert.Contains(mt, err.Error(), "duplicate key error")
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestStore_Query(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all documents", func(mt *mtest.T) {
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.product", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "title", Value: "Tee"}, {Key: "category", Value: "Tops"}},
			bson.D{{Key: "_id", Value: second}, {Key: "title", Value: "Cap"}, {Key: "category", Value: "Accessories"}},
		))
		store := NewStore(mt.DB)

		var out []record
		err := store.Query(context.Background(), "product", nil, &out)

		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.Equal(mt, first, out[0].ID)
		assert.Equal(mt, "Cap", out[1].Title)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on test",
		}))
		store := NewStore(mt.DB)

		var out []record
		err := store.Query(context.Background(), "product", bson.M{"category": "Tops"}, &out)

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized on test")
	})
}

func TestStore_DistinctValues(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("keeps string values", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{"Tops", "Bottoms", int32(3)}},
		))
		store := NewStore(mt.DB)

		values, err := store.DistinctValues(context.Background(), "product", "category")

		require.NoError(mt, err)
		assert.Equal(mt, []string{"Tops", "Bottoms"}, values)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{}},
		))
		store := NewStore(mt.DB)

		values, err := store.DistinctValues(context.Background(), "product", "category")

		require.NoError(mt, err)
		assert.NotNil(mt, values)
		assert.Empty(mt, values)
	})
}

func TestStore_Count(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reads n", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.product", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(5)}},
		))
		store := NewStore(mt.DB)

		n, err := store.Count(context.Background(), "product", nil)

		require.NoError(mt, err)
		assert.Equal(mt, int64(5), n)
	})
}

func TestStore_ListCollectionNames(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("caps the result", func(mt *mtest.T) {
		docs := make([]bson.D, 0, 12)
		for i := 0; i < 12; i++ {
			docs = append(docs, bson.D{{Key: "name", Value: fmt.Sprintf("coll%d", i)}, {Key: "type", Value: "collection"}})
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.$cmd.listCollections", mtest.FirstBatch, docs...))
		store := NewStore(mt.DB)

		names, err := store.ListCollectionNames(context.Background())

		require.NoError(mt, err)
		assert.Len(mt, names, MaxListedCollections)
		assert.Equal(mt, "coll0", names[0])
	})
}

func TestStore_Ping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewStore(mt.DB)

		assert.NoError(mt, store.Ping(context.Background()))
		assert.Equal(mt, mt.DB.Name(), store.Name())
	})
}

func TestStore_NotConnected(t *testing.T) {
	var store *Store
	ctx := context.Background()

	_, err := store.Insert(ctx, "product", record{})
	assert.True(t, errors.Is(err, ErrNotConnected))

	var out []record
	assert.ErrorIs(t, store.Query(ctx, "product", nil, &out), ErrNotConnected)

	_, err = store.DistinctValues(ctx, "product", "category")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = store.Count(ctx, "product", nil)
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = store.ListCollectionNames(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.ErrorIs(t, store.Ping(ctx), ErrNotConnected)
	assert.NoError(t, store.Close(ctx))
	assert.Equal(t, "", store.Name())

	assert.ErrorIs(t, NewStore(nil).Ping(ctx), ErrNotConnected)
}

func TestConnect_EmptyURI(t *testing.T) {
	client, err := Connect(context.Background(), "", 0)

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConnected)
}
