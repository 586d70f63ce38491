package controllers

import (
	"errors"
	"net/http"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/services"
	"github.com/upahaar/upahaar/pkg/ctx"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController serves the authenticated cart endpoints.
type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

type addItemRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"nullable,gte=1"`
	GiftWrap    bool   `json:"giftWrap"`
	GiftMessage string `json:"giftMessage" validate:"nullable,max=500"`
}

type updateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// currentUser resolves the authenticated user id set by the auth middleware.
func currentUser(c *ctx.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.UserIDFromCtx(c.Context()))
	if err != nil {
		c.Unauthorized()
		return primitive.NilObjectID, false
	}
	return id, true
}

// Show handles GET /cart.
func (cc *CartController) Show(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cart, err := cc.service.Get(c.Context(), userID)
	if err != nil {
		logger.WithCtx(c.Context()).Error("get cart", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	c.Success("Cart fetched successfully", cart)
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req addItemRequest
	if !c.BindJSON(&req) {
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := cc.service.AddItem(c.Context(), userID, productID, req.Quantity, models.Customization{
		Message:  req.GiftMessage,
		GiftWrap: req.GiftWrap,
	})
	if err != nil {
		cc.writeCartError(c, err, "add cart item")
		return
	}
	c.Success("Item added to cart", cart)
}

// UpdateItem handles PUT /cart/items.
func (cc *CartController) UpdateItem(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if !c.BindJSON(&req) {
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := cc.service.UpdateItem(c.Context(), userID, productID, req.Quantity)
	if err != nil {
		cc.writeCartError(c, err, "update cart item")
		return
	}
	c.Success("Cart updated", cart)
}

// RemoveItem handles DELETE /cart/items/{productId}.
func (cc *CartController) RemoveItem(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := cc.service.RemoveItem(c.Context(), userID, productID)
	if err != nil {
		cc.writeCartError(c, err, "remove cart item")
		return
	}
	c.Success("Item removed from cart", cart)
}

// Clear handles DELETE /cart.
func (cc *CartController) Clear(c *ctx.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := cc.service.Clear(c.Context(), userID); err != nil {
		logger.WithCtx(c.Context()).Error("clear cart", "error", err)
		c.Error(http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	c.Success("Cart cleared", nil)
}

func (cc *CartController) writeCartError(c *ctx.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.NotFound("Product not found")
	case errors.Is(err, services.ErrInsufficientStock):
		c.Error(http.StatusConflict, "Not enough stock available")
	case errors.Is(err, services.ErrItemNotInCart):
		c.NotFound("Item not in cart")
	default:
		logger.WithCtx(c.Context()).Error(op, "error", err)
		c.Error(http.StatusInternalServerError, "Cart operation failed")
	}
}
