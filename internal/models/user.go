package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SystemUser represents an operator for actions performed by the system itself.
var SystemUser = &User{
	UserId: primitive.NilObjectID,
	Name:   "System",
	Email:  "system@h4fitness.in",
}

type User struct {
	UserId primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name   string             `json:"name" bson:"name"`
	Email  string             `json:"email,omitempty" bson:"email,omitempty"`
}
