package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a customer or administrator account. PasswordHash is the
// argon2id-encoded hash and is never serialized into responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	Street       string             `bson:"street" json:"street"`
	Apartment    string             `bson:"apartment" json:"apartment"`
	City         string             `bson:"city" json:"city"`
	Zip          string             `bson:"zip" json:"zip"`
	Country      string             `bson:"country" json:"country"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
}
