package http

import (
	"net/http"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
)

func productInput(req ProductRequest) services.CreateProductInput {
	return services.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Quantity:      req.Quantity,
		Category:      domain.Category(req.Category),
		ImageCover:    req.ImageCover,
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.successList(c, len(products), products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	p := principalFrom(c)
	product, err := h.products.Create(c.Request.Context(), p.UserID, productInput(req))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid product id"))
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid product id"))
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), principalFrom(c), id, productInput(req))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid product id"))
		return
	}
	if err := h.products.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
		h.respond.err(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *Handler) AddToCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid product id"))
		return
	}
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.err(c, apperr.Invalid("quantity must be given and at least 1"))
		return
	}

	p := principalFrom(c)
	cart, err := h.carts.AddToCart(c.Request.Context(), p.UserID, id, req.Quantity)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid product id"))
		return
	}

	p := principalFrom(c)
	favs, err := h.carts.ToggleFavorite(c.Request.Context(), p.UserID, id)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"favorites": favs})
}
