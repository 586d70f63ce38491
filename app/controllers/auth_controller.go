package controllers

import (
	"errors"
	"net/http"

	"github.com/upahaar/upahaar/app/services"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
)

// AuthController serves signup, OTP verification and login.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,digits=6"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /auth/signup.
func (ac *AuthController) Signup(c *ctx.Context) {
	var req signupRequest
	if !c.BindJSON(&req) {
		return
	}

	user, err := ac.service.Signup(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.Error(http.StatusConflict, "Email already registered")
			return
		}
		logger.WithCtx(c.Context()).Error("signup", "error", err)
		c.Error(http.StatusInternalServerError, "Signup failed")
		return
	}

	c.Created("Account created, verification code sent", map[string]interface{}{
		"email":      user.Email,
		"isVerified": user.IsVerified,
	})
}

// VerifyOTP handles POST /auth/verify-otp.
func (ac *AuthController) VerifyOTP(c *ctx.Context) {
	var req otpRequest
	if !c.BindJSON(&req) {
		return
	}

	if err := ac.service.VerifyOTP(c.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			c.Error(http.StatusBadRequest, "Invalid or expired verification code")
			return
		}
		logger.WithCtx(c.Context()).Error("verify otp", "error", err)
		c.Error(http.StatusInternalServerError, "Verification failed")
		return
	}
	c.Success("Account verified", nil)
}

// ResendOTP handles POST /auth/resend-otp.
func (ac *AuthController) ResendOTP(c *ctx.Context) {
	var req emailRequest
	if !c.BindJSON(&req) {
		return
	}

	if err := ac.service.ResendOTP(c.Context(), req.Email); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.NotFound("Account not found")
			return
		}
		logger.WithCtx(c.Context()).Error("resend otp", "error", err)
		c.Error(http.StatusInternalServerError, "Could not resend code")
		return
	}
	c.Success("Verification code sent", nil)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	token, user, err := ac.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.Unauthorized("Invalid email or password")
		case errors.Is(err, services.ErrNotVerified):
			c.Forbidden("Account not verified")
		default:
			logger.WithCtx(c.Context()).Error("login", "error", err)
			c.Error(http.StatusInternalServerError, "Login failed")
		}
		return
	}

	c.Success("Logged in", map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"_id":   user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
