package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a dashboard account. Password holds the bcrypt hash.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username_format"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type Credential struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
