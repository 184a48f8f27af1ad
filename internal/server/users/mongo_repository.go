package users

import (
	"context"

	"github.com/degreedialog/advisor/internal/mongox"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "users"

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, user *User) (*User, error) {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return nil, mongox.ClassifyError(err)
	}
	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByUserName(ctx context.Context, userName string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": userName})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	user := &User{}
	if err := r.col.FindOne(ctx, filter).Decode(user); err != nil {
		return nil, mongox.ClassifyError(err)
	}
	return user, nil
}
