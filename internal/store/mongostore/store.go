package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/store"
	"github.com/AnshRaj112/ytsummary-backend/pkg/utils"
)

const (
	UsersCollection   = "users"
	ContentCollection = "generated_content"
)

type Store struct {
	users   *mongo.Collection
	content *mongo.Collection
	logger  *zap.Logger
	now     func() time.Time
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		users:   db.Collection(UsersCollection),
		content: db.Collection(ContentCollection),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique email index and the listing index.
// Called on startup from main after Mongo has connected.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}); err != nil {
		return &store.Error{Op: "ensure users index", Err: err}
	}
	if _, err := s.content.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_timestamp"),
	}); err != nil {
		return &store.Error{Op: "ensure content index", Err: err}
	}
	return nil
}

func (s *Store) Register(ctx context.Context, email, password string) error {
	err := s.users.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return store.ErrAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return &store.Error{Op: "find user", Err: err}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return &store.Error{Op: "hash password", Err: err}
	}

	_, err = s.users.InsertOne(ctx, models.User{
		Email:     email,
		Password:  hashed,
		CreatedAt: s.now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return &store.Error{Op: "insert user", Err: err}
	}

	s.logger.Info("user registered", zap.String("email", email))
	return nil
}

func (s *Store) Authenticate(ctx context.Context, email, password string) error {
	var user userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrInvalidCredentials
	}
	if err != nil {
		return &store.Error{Op: "find user", Err: err}
	}

	ok, err := utils.VerifyPassword(password, user.hash())
	if err != nil || !ok {
		return store.ErrInvalidCredentials
	}
	return nil
}

func (s *Store) SaveContent(ctx context.Context, record models.GeneratedContent) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = s.now()
	}
	if _, err := s.content.InsertOne(ctx, record); err != nil {
		return &store.Error{Op: "insert content", Err: err}
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().SetProjection(bson.M{"email": 1, "created_at": 1, "_id": 0})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &store.Error{Op: "list users", Err: err}
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, &store.Error{Op: "decode users", Err: err}
	}
	return users, nil
}

func (s *Store) ListContent(ctx context.Context) ([]models.ContentSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"email": 1, "video_id": 1, "content_type": 1, "language": 1, "timestamp": 1, "_id": 0}).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.content.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &store.Error{Op: "list content", Err: err}
	}
	defer cursor.Close(ctx)

	records := []models.ContentSummary{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, &store.Error{Op: "decode content", Err: err}
	}
	return records, nil
}

// userDoc reads the stored hash as a raw value: accounts created by the
// previous deployment hold a bcrypt hash as BSON binary instead of a string.
type userDoc struct {
	Password bson.RawValue `bson:"password"`
}

func (u userDoc) hash() string {
	if s, ok := u.Password.StringValueOK(); ok {
		return s
	}
	if _, data, ok := u.Password.BinaryOK(); ok {
		return string(data)
	}
	return ""
}

var _ store.Accounts = (*Store)(nil)
