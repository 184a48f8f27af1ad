package chats

import (
	"context"

	"github.com/degreedialog/advisor/internal/mongox"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "chats"

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, exchange *Exchange) error {
	if _, err := r.col.InsertOne(ctx, exchange); err != nil {
		return mongox.ClassifyError(err)
	}
	return nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]*Exchange, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mongox.ClassifyError(err)
	}

	exchanges := []*Exchange{}
	if err := cursor.All(ctx, &exchanges); err != nil {
		return nil, mongox.ClassifyError(err)
	}

	return exchanges, nil
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, mongox.ClassifyError(err)
	}
	return res.DeletedCount, nil
}
