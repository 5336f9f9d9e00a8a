package http

import (
	"strconv"
	"strings"

	"github.com/JJ00428/market-api/internal/repository"
	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=Consumer Seller Admin"`
	Address     string `json:"address"`
	Certificate string `json:"certificate"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
}

// UpdateMeRequest deliberately captures password fields so the handler can
// reject them with a pointer at the password route.
type UpdateMeRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email" binding:"omitempty,email"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type AdminUpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"omitempty,oneof=Consumer Seller Admin"`
	Active   *bool  `json:"active"`
}

type ProductRequest struct {
	Name          string   `json:"name" binding:"required,min=5,max=30"`
	Description   string   `json:"description" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	PriceDiscount *float64 `json:"priceDiscount"`
	Quantity      int64    `json:"quantity" binding:"min=0"`
	Category      string   `json:"category" binding:"required"`
	ImageCover    string   `json:"imageCover"`
}

type AddToCartRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	CardNumber    string `json:"cardNumber"`
	CardPass      string `json:"cardPass"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelOrderRequest names an optional single product a seller wants removed
// instead of cancelling the whole order.
type CancelOrderRequest struct {
	ProductID *uint64 `json:"productId"`
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// reserved query keys never become filters
var reservedQueryKeys = map[string]bool{
	"page": true, "limit": true, "sort": true, "fields": true,
}

// parseListQuery maps the query string onto the generic list shape:
// ?price[gte]=5&sort=-price,name&fields=name,price&page=2&limit=10
func parseListQuery(c *gin.Context) repository.ListQuery {
	q := repository.ListQuery{Filters: map[string]string{}}

	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 || reservedQueryKeys[key] {
			continue
		}
		field := key
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			field = key[:i] + "__" + key[i+1:len(key)-1]
		}
		q.Filters[field] = values[0]
	}

	if sort := c.Query("sort"); sort != "" {
		q.Sort = strings.Split(sort, ",")
	}
	if fields := c.Query("fields"); fields != "" {
		q.Fields = strings.Split(fields, ",")
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return q
}
