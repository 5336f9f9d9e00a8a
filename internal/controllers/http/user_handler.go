package http

import (
	"net/http"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMe(c *gin.Context) {
	h.respond.success(c, http.StatusOK, gin.H{"user": userFrom(c)})
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}
	if req.Password != "" || req.PasswordConfirm != "" {
		h.respond.err(c, apperr.Invalid("this route is not for password updates, please use /updateMyPassword"))
		return
	}

	p := principalFrom(c)
	user, err := h.users.UpdateMe(c.Request.Context(), p.UserID, services.UpdateMeInput{
		Username: req.Username,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) DeleteMe(c *gin.Context) {
	p := principalFrom(c)
	if err := h.users.DeleteMe(c.Request.Context(), p.UserID); err != nil {
		h.respond.err(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.successList(c, len(users), users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid user id"))
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) AdminUpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid user id"))
		return
	}
	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	user, err := h.users.AdminUpdate(c.Request.Context(), id, services.AdminUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Address:  req.Address,
		Role:     domain.Role(req.Role),
		Active:   req.Active,
	})
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid user id"))
		return
	}
	if err := h.users.AdminDelete(c.Request.Context(), id); err != nil {
		h.respond.err(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *Handler) GetCart(c *gin.Context) {
	p := principalFrom(c)
	cart, err := h.carts.GetCart(c.Request.Context(), p.UserID)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) GetFavorites(c *gin.Context) {
	p := principalFrom(c)
	favs, err := h.carts.GetFavorites(c.Request.Context(), p.UserID)
	if err != nil {
		h.respond.err(c, err)
		return
	}
	h.respond.success(c, http.StatusOK, gin.H{"favorites": favs})
}
