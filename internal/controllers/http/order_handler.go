package http

import (
	"net/http"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.err(c, apperr.Invalid("invalid payment method"))
		return
	}

	p := principalFrom(c)
	order, err := h.orders.Checkout(c.Request.Context(), p.UserID, services.CheckoutInput{
		Payment:    domain.PaymentMethod(req.PaymentMethod),
		CardNumber: req.CardNumber,
		CardPass:   req.CardPass,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid order id"))
		return
	}

	order, err := h.orders.Get(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), principalFrom(c), parseListQuery(c))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.successList(c, len(orders), orders)
}

// MyOrders is the consumer view of their own order history.
func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), principalFrom(c), parseListQuery(c))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.successList(c, len(orders), orders)
}

// CustomerOrders is the Admin view of one customer's orders.
func (h *Handler) CustomerOrders(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid user id"))
		return
	}

	orders, err := h.orders.ListForCustomer(c.Request.Context(), id, parseListQuery(c))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.successList(c, len(orders), orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid order id"))
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.err(c, apperr.Invalid("invalid status value, pick from [pending, processing, shipped, delivered, cancelled]"))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), principalFrom(c), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid order id"))
		return
	}

	// body is optional: sellers may name a single product to remove
	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.orders.Cancel(c.Request.Context(), principalFrom(c), id, req.ProductID)
	if err != nil {
		h.respond.err(c, err)
		return
	}

	if order.Status == domain.StatusCancelled {
		h.respond.success(c, http.StatusOK, gin.H{
			"message": "order has been cancelled and stock has been restored",
			"order":   gin.H{"id": order.ID, "status": order.Status},
		})
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{
		"message": "product removed from the order and order updated",
		"order":   order,
	})
}
