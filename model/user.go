package model

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // argon2id hash
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Avatar derives the gravatar URL for an email address.
func Avatar(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=128", hash)
}

// CreationDate reports the day the account was created, read off the
// timestamp embedded in the ObjectID.
func (u *User) CreationDate() string {
	return u.ID.Timestamp().UTC().Format("2006-01-02")
}
