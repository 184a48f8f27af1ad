package db

import (
	"context"
	"time"

	"github.com/degreedialog/advisor/internal/mongox"
	"github.com/degreedialog/advisor/internal/server/chats"
	"github.com/degreedialog/advisor/internal/server/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout         = 10 * time.Second
	serverSelectionTimeout = 5 * time.Second
)

type MongoManager struct {
	client *mongo.Client
	users  users.Repository
	chats  chats.Repository
}

func (m *MongoManager) Users() users.Repository {
	return m.users
}

func (m *MongoManager) Chats() chats.Repository {
	return m.chats
}

// Ping verifies store connectivity. Failures come back classified, so a
// caller can distinguish an unreachable store from rejected credentials.
func (m *MongoManager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return mongox.ClassifyError(err)
	}
	return nil
}

func (m *MongoManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// NewMongoManager connects to the document store and builds the
// repositories. Connecting does not itself verify reachability; callers that
// want fail-fast startup must Ping explicitly.
func NewMongoManager(ctx context.Context, uri, name string) (Manager, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, mongox.ClassifyError(err)
	}

	database := client.Database(name)

	return &MongoManager{
		client: client,
		users:  users.NewMongoRepository(database),
		chats:  chats.NewMongoRepository(database),
	}, nil
}
