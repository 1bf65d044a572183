package repository

import (
	"context"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(database *mongo.Database) domain.MessageRepository {
	return &messageRepository{
		db: database,
	}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	collection := r.db.Collection(db.MessagesCollection)

	if message.ID == "" {
		message.ID = primitive.NewObjectID().Hex()
	}

	_, err := collection.InsertOne(ctx, message)
	return err
}

func (r *messageRepository) FindByRoomID(ctx context.Context, roomID string, pageNo, pageSize int) ([]domain.Message, error) {
	collection := r.db.Collection(db.MessagesCollection)

	filter := bson.M{"room_id": roomID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(pageNo) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]domain.Message, 0, pageSize)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	collection := r.db.Collection(db.MessagesCollection)

	return collection.CountDocuments(ctx, bson.M{"room_id": roomID})
}

// EnsureIndexes creates the composite index history queries sort and page on.
func (r *messageRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.MessagesCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// EnsureMessageIndexes is the startup hook main calls without caring about the
// repository's concrete type.
func EnsureMessageIndexes(ctx context.Context, repo domain.MessageRepository) error {
	if r, ok := repo.(*messageRepository); ok {
		return r.EnsureIndexes(ctx)
	}
	return nil
}
