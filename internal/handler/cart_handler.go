package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
)

// CartHandler exposes the cart mutation engine. Every mutation redirects back
// to the cart view; no-op outcomes (unknown product, stock cap, missing line)
// redirect the same way, they just change nothing.
type CartHandler struct {
	cartService *service.CartService
	logger      *zap.Logger
}

func NewCartHandler(cartService *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

func (h *CartHandler) ViewCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	c.JSON(http.StatusOK, gin.H{
		"items": sess.Cart.Items,
		"total": sess.Cart.Total(),
	})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sess := middleware.GetSession(c)
	productID := c.Param("id")

	result, err := h.cartService.AddItem(c.Request.Context(), sess, productID)
	h.finishMutation(c, "add", productID, result, err)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := middleware.GetSession(c)
	productID := c.Param("id")

	result, err := h.cartService.RemoveItem(c.Request.Context(), sess, productID)
	h.finishMutation(c, "remove", productID, result, err)
}

func (h *CartHandler) IncreaseQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	productID := c.Param("id")

	result, err := h.cartService.IncreaseQuantity(c.Request.Context(), sess, productID)
	h.finishMutation(c, "increase", productID, result, err)
}

func (h *CartHandler) DecreaseQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	productID := c.Param("id")

	result, err := h.cartService.DecreaseQuantity(c.Request.Context(), sess, productID)
	h.finishMutation(c, "decrease", productID, result, err)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	productID := c.Param("id")
	action := domain.UpdateAction(c.PostForm("action"))

	result, err := h.cartService.UpdateQuantity(c.Request.Context(), sess, productID, action)
	h.finishMutation(c, "update", productID, result, err)
}

func (h *CartHandler) finishMutation(c *gin.Context, op, productID string, result domain.MutationResult, err error) {
	if err != nil {
		h.logger.Error("Cart mutation failed",
			zap.String("op", op),
			zap.String("product_id", productID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	if !result.IsApplied() {
		h.logger.Info("Cart mutation skipped",
			zap.String("op", op),
			zap.String("product_id", productID),
			zap.String("reason", string(result.Reason)))
	}

	c.Redirect(http.StatusSeeOther, "/cart")
}
