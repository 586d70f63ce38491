package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{coll: database.Collection("users")}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return user, fmt.Errorf("repositories: find user by email: %w", err)
	}
	return user, nil
}

// FindByID looks up a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return user, fmt.Errorf("repositories: find user %s: %w", id.Hex(), err)
	}
	return user, nil
}

// Create persists a new user record and fills its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("repositories: create user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// SetOTP stores a fresh verification code and its expiry on the user.
func (r *UserRepository) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"otp": otp, "otpExpiry": expiry, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("repositories: set otp %s: %w", id.Hex(), err)
	}
	return nil
}

// MarkVerified clears the OTP fields and flags the account verified.
func (r *UserRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
			"$unset": bson.M{"otp": "", "otpExpiry": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("repositories: mark verified %s: %w", id.Hex(), err)
	}
	return nil
}

// ProfileUpdate carries the user-editable profile fields. Nil slices and
// empty strings leave the stored value untouched.
type ProfileUpdate struct {
	Name      string
	Phone     string
	Addresses []models.Address
}

// UpdateProfile applies a partial profile update and returns the fresh
// document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Phone != "" {
		set["phone"] = upd.Phone
	}
	if upd.Addresses != nil {
		set["addresses"] = upd.Addresses
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.User{}, fmt.Errorf("repositories: update profile %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return models.User{}, fmt.Errorf("repositories: update profile %s: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return r.FindByID(ctx, id)
}

// AddAddress appends a delivery address to the user's saved list.
func (r *UserRepository) AddAddress(ctx context.Context, id primitive.ObjectID, addr models.Address) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"addresses": addr},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("repositories: add address %s: %w", id.Hex(), err)
	}
	return nil
}
