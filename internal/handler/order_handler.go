package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
)

// OrderHandler drives checkout, order history, and the reorder/repayment
// flow. Navigational failures (empty cart, unknown order, missing draft)
// redirect to a safe view instead of erroring.
type OrderHandler struct {
	checkoutService *service.CheckoutService
	logger          *zap.Logger
}

func NewOrderHandler(checkoutService *service.CheckoutService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// ShowCheckout presents the cart for confirmation. An empty cart has nothing
// to confirm and goes back to the cart view.
func (h *OrderHandler) ShowCheckout(c *gin.Context) {
	sess := middleware.GetSession(c)

	if sess.Cart.IsEmpty() {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": sess.Cart.Items,
		"total": sess.Cart.Total(),
	})
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req domain.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("Invalid checkout form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// The prescription upload itself is handled by the file-storage
	// collaborator; the order only records an opaque reference.
	if file, err := c.FormFile("prescription"); err == nil && file != nil {
		req.Prescription = "/uploads/" + uuid.NewString() + "-" + file.Filename
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), sess, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		h.logger.Error("Checkout failed",
			zap.String("session_id", sess.SessionID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.OrderID,
		"name":     order.Name,
		"address":  order.Address,
		"payment":  order.Payment,
		"total":    order.Total,
	})
}

func (h *OrderHandler) OrderHistory(c *gin.Context) {
	sess := middleware.GetSession(c)

	filter := domain.HistoryFilter{
		Payment: c.Query("payment"),
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil {
		filter.Month = month
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}

	orders, err := h.checkoutService.ListOrders(c.Request.Context(), sess, filter)
	if err != nil {
		h.logger.Error("Failed to list orders",
			zap.String("session_id", sess.SessionID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order history",
		})
		return
	}

	responses := make([]domain.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, domain.NewOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{"orders": responses})
}

func (h *OrderHandler) Reorder(c *gin.Context) {
	sess := middleware.GetSession(c)
	orderID := c.Param("id")

	_, err := h.checkoutService.BeginReorder(c.Request.Context(), sess, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.Redirect(http.StatusSeeOther, "/orders/history")
			return
		}

		h.logger.Error("Failed to begin reorder",
			zap.String("order_id", orderID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start reorder",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/orders/payment")
}

func (h *OrderHandler) ShowPayment(c *gin.Context) {
	sess := middleware.GetSession(c)

	draft, err := h.checkoutService.ViewPayment(sess)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/orders/history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": draft})
}

func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	sess := middleware.GetSession(c)

	order, err := h.checkoutService.ConfirmPayment(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, service.ErrNoReorderDraft) {
			c.Redirect(http.StatusSeeOther, "/orders/history")
			return
		}

		h.logger.Error("Failed to confirm payment",
			zap.String("session_id", sess.SessionID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to confirm payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.OrderID,
		"name":     order.Name,
		"address":  order.Address,
		"payment":  order.Payment,
		"total":    order.Total,
	})
}
