package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/upahaar/upahaar/app/jobs"
	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/pkg/auth"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/queue"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
)

// AuthService implements signup with email verification, OTP confirmation
// and token-based login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Signup registers a new account and queues the verification email. The
// account stays unverified until the OTP is confirmed.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("services: hash password: %w", err)
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return models.User{}, fmt.Errorf("services: generate otp: %w", err)
	}

	user := models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      "user",
		OTP:       otp,
		OTPExpiry: time.Now().Add(auth.OTPTTL),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	if err := queue.Dispatch(jobs.OTPEmail{To: email, Name: name, OTP: otp}); err != nil {
		// Signup still succeeds, the user can request a fresh code.
		logger.WithCtx(ctx).Error("queue otp email", "error", err, "email", email)
	}

	return user, nil
}

// VerifyOTP confirms the emailed code and activates the account.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOTP
		}
		return err
	}

	if user.OTP == "" || user.OTP != otp || time.Now().After(user.OTPExpiry) {
		return ErrInvalidOTP
	}

	return s.users.MarkVerified(ctx, user.ID)
}

// ResendOTP issues a fresh verification code to an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidCredentials
		}
		return err
	}
	if user.IsVerified {
		return nil
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return fmt.Errorf("services: generate otp: %w", err)
	}
	if err := s.users.SetOTP(ctx, user.ID, otp, time.Now().Add(auth.OTPTTL)); err != nil {
		return err
	}

	return queue.Dispatch(jobs.OTPEmail{To: user.Email, Name: user.Name, OTP: otp})
}

// Login checks the credentials and returns a signed token. Unverified
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", models.User{}, ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("services: sign token: %w", err)
	}
	return token, user, nil
}
