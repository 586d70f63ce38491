package controllers

import (
	"errors"
	"net/http"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/app/services"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserController serves the authenticated profile endpoints.
type UserController struct {
	users *repositories.UserRepository
	carts *services.CartService
}

func NewUserController() *UserController {
	return &UserController{
		users: repositories.NewUserRepository(),
		carts: services.NewCartService(),
	}
}

type updateProfileRequest struct {
	Name      string           `json:"name" validate:"nullable,min=2,max=100"`
	Phone     string           `json:"phone" validate:"nullable,max=20"`
	Addresses []models.Address `json:"addresses"`
}

// cartSummary is the lightweight cart shape embedded in the profile response.
type cartSummary struct {
	TotalItems  int     `json:"totalItems"`
	TotalAmount float64 `json:"totalAmount"`
}

type profileResponse struct {
	User models.User `json:"user"`
	Cart cartSummary `json:"cart"`
}

// Show handles GET /users/profile.
func (uc *UserController) Show(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := uc.users.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("User not found")
			return
		}
		logger.WithCtx(c.Context()).Error("fetch profile", "error", err)
		c.Error(http.StatusInternalServerError, "Error fetching profile")
		return
	}

	cart, err := uc.carts.Get(c.Context(), userID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("fetch profile cart", "error", err)
		c.Error(http.StatusInternalServerError, "Error fetching profile")
		return
	}

	c.Success("Profile fetched successfully", profileResponse{
		User: user,
		Cart: cartSummary{TotalItems: cart.TotalItems, TotalAmount: cart.TotalAmount},
	})
}

// Update handles PUT /users/profile. Only name, phone and addresses are
// user-editable; omitted fields keep their stored values.
func (uc *UserController) Update(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !c.BindJSON(&req) {
		return
	}

	user, err := uc.users.UpdateProfile(c.Context(), userID, repositories.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Addresses: req.Addresses,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.NotFound("User not found")
			return
		}
		logger.WithCtx(c.Context()).Error("update profile", "error", err)
		c.Error(http.StatusInternalServerError, "Error updating profile")
		return
	}

	c.Success("Profile updated successfully", user)
}
