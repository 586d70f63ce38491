package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery address embedded in a user.
type Address struct {
	Street     string `bson:"street,omitempty" json:"street,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	// "home", "work" or "other".
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

// User is a document in the users collection.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfilePic string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	// "customer", "admin", "vendor", "moderator" or "guest".
	Role       string    `bson:"role" json:"role"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	OTP        string    `bson:"otp,omitempty" json:"-"`
	OTPExpiry  time.Time `bson:"otpExpiry,omitempty" json:"-"`
	Addresses  []Address `bson:"addresses,omitempty" json:"addresses,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
