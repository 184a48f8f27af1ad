package users

import "time"

// User is the stored account record. PasswordHash is a salted bcrypt hash;
// the plaintext password is never persisted.
type User struct {
	ID           string    `bson:"_id"`
	UserName     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}
