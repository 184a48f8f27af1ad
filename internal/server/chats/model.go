package chats

import "time"

// Exchange is one stored question/answer pair.
type Exchange struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Message   string    `bson:"message"`
	Reply     string    `bson:"reply"`
	CreatedAt time.Time `bson:"created_at"`
}
