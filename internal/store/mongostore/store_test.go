package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/store"
	"github.com/AnshRaj112/ytsummary-backend/pkg/utils"
)

func newStore(mt *mtest.T) *Store {
	s := New(mt.DB, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func usersNS(mt *mtest.T) string {
	return mt.DB.Name() + "." + UsersCollection
}

func TestRegister(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new identifier", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		err := newStore(mt).Register(context.Background(), "a@b.com", "p1")

		require.NoError(mt, err)
	})

	mt.Run("existing identifier", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "a@b.com"},
			}),
		)

		err := newStore(mt).Register(context.Background(), "a@b.com", "p1")

		assert.ErrorIs(mt, err, store.ErrAlreadyExists)
	})

	mt.Run("duplicate key on insert", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
		)

		err := newStore(mt).Register(context.Background(), "a@b.com", "p1")

		assert.ErrorIs(mt, err, store.ErrAlreadyExists)
	})

	mt.Run("lookup failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad"}))

		err := newStore(mt).Register(context.Background(), "a@b.com", "p1")

		var se *store.Error
		assert.ErrorAs(mt, err, &se)
	})
}

func TestAuthenticate(t *testing.T) {
	hash, err := utils.HashPassword("p1")
	require.NoError(t, err)
	legacy, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	require.NoError(t, err)

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userDocWith := func(password interface{}) bson.D {
		return bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@b.com"},
			{Key: "password", Value: password},
		}
	}

	mt.Run("correct password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch, userDocWith(hash)))

		assert.NoError(mt, newStore(mt).Authenticate(context.Background(), "a@b.com", "p1"))
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch, userDocWith(hash)))

		err := newStore(mt).Authenticate(context.Background(), "a@b.com", "nope")

		assert.ErrorIs(mt, err, store.ErrInvalidCredentials)
	})

	mt.Run("unknown identifier", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch))

		err := newStore(mt).Authenticate(context.Background(), "ghost@b.com", "p1")

		assert.ErrorIs(mt, err, store.ErrInvalidCredentials)
	})

	mt.Run("legacy binary bcrypt hash", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch,
			userDocWith(primitive.Binary{Data: legacy})))

		assert.NoError(mt, newStore(mt).Authenticate(context.Background(), "a@b.com", "old"))
	})
}

func TestSaveContent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := newStore(mt).SaveContent(context.Background(), models.GeneratedContent{
			Email:       "a@b.com",
			VideoID:     "abc123",
			ContentType: models.KindSummary,
			Content:     "hello world this...",
		})

		require.NoError(mt, err)
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutting down"}))

		err := newStore(mt).SaveContent(context.Background(), models.GeneratedContent{Email: "a@b.com"})

		var se *store.Error
		assert.ErrorAs(mt, err, &se)
	})
}

func TestListings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("users", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch,
			bson.D{{Key: "email", Value: "a@b.com"}},
			bson.D{{Key: "email", Value: "c@d.com"}},
		))

		users, err := newStore(mt).ListUsers(context.Background())

		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "a@b.com", users[0].Email)
		assert.Equal(mt, "c@d.com", users[1].Email)
	})

	mt.Run("content", func(mt *mtest.T) {
		ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+ContentCollection, mtest.FirstBatch,
			bson.D{
				{Key: "email", Value: "a@b.com"},
				{Key: "video_id", Value: "abc123"},
				{Key: "content_type", Value: "Notes"},
				{Key: "timestamp", Value: ts},
			},
		))

		records, err := newStore(mt).ListContent(context.Background())

		require.NoError(mt, err)
		require.Len(mt, records, 1)
		assert.Equal(mt, models.KindNotes, records[0].ContentType)
		assert.Equal(mt, "abc123", records[0].VideoID)
		assert.True(mt, ts.Equal(records[0].Timestamp))
		assert.Nil(mt, records[0].Language)
	})

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch))

		users, err := newStore(mt).ListUsers(context.Background())

		require.NoError(mt, err)
		assert.Empty(mt, users)
		assert.NotNil(mt, users)
	})
}
