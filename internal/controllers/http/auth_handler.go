package http

import (
	"net/http"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), services.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		Address:     req.Address,
		Certificate: req.Certificate,
	})
	if err != nil {
		h.respond.err(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.err(c, apperr.Invalid("please provide email and password"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respond.err(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respond.err(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "token sent to email"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	user, token, err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		h.respond.err(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

func (h *Handler) UpdateMyPassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.invalid(c, err)
		return
	}

	p := principalFrom(c)
	token, err := h.auth.UpdatePassword(c.Request.Context(), p.UserID, req.PasswordCurrent, req.Password)
	if err != nil {
		h.respond.err(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "token": token})
}

func (h *Handler) ApproveSeller(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.respond.err(c, apperr.Invalid("invalid user id"))
		return
	}

	user, err := h.auth.ApproveSeller(c.Request.Context(), id)
	if err != nil {
		h.respond.err(c, err)
		return
	}

	h.respond.success(c, http.StatusOK, gin.H{"message": "seller accepted", "user": user})
}
