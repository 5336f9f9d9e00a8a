package http

import (
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/guard"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth     *services.AuthService
	users    *services.UserService
	carts    *services.CartService
	products *services.ProductService
	orders   *services.OrderService
	respond  *responder
}

func NewHandler(auth *services.AuthService, users *services.UserService, carts *services.CartService, products *services.ProductService, orders *services.OrderService, dev bool) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		carts:    carts,
		products: products,
		orders:   orders,
		respond:  &responder{dev: dev},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID())

	api := r.Group("/marketAPI/v1")
	protect := Protect(h.auth, h.respond)

	users := api.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)
		users.POST("/forgotPassword", h.ForgotPassword)
		users.PATCH("/resetPassword/:token", h.ResetPassword)

		authed := users.Group("", protect)
		authed.PATCH("/updateMyPassword", h.UpdateMyPassword)
		authed.GET("/MyAccount", h.GetMe)
		authed.PATCH("/updateMe", h.UpdateMe)
		authed.DELETE("/deleteMe", h.DeleteMe)

		authed.GET("/MyOrders",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer)), h.MyOrders)
		authed.GET("/cart",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer)), h.GetCart)
		authed.POST("/cart",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer), guard.RequireActive()), h.Checkout)
		authed.GET("/favorites",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer)), h.GetFavorites)

		admin := authed.Group("", Guards(h.respond, guard.RequireRole(domain.RoleAdmin)))
		admin.GET("", h.ListUsers)
		admin.GET("/:id", h.GetUser)
		admin.PATCH("/:id", h.AdminUpdateUser)
		admin.DELETE("/:id", h.AdminDeleteUser)
		admin.PATCH("/:id/approve", h.ApproveSeller)
		admin.GET("/:id/orders", h.CustomerOrders)
	}

	products := api.Group("/products", protect, Guards(h.respond, guard.RequireActive()))
	{
		products.GET("", h.ListProducts)
		products.POST("",
			Guards(h.respond, guard.RequireRole(domain.RoleAdmin, domain.RoleSeller)), h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id",
			Guards(h.respond, guard.RequireRole(domain.RoleAdmin, domain.RoleSeller)), h.UpdateProduct)
		products.DELETE("/:id",
			Guards(h.respond, guard.RequireRole(domain.RoleAdmin, domain.RoleSeller)), h.DeleteProduct)
		products.POST("/:id",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer)), h.AddToCart)
		products.GET("/:id/favorite", h.ToggleFavorite)
	}

	orders := api.Group("/orders", protect)
	{
		orders.GET("",
			Guards(h.respond, guard.RequireRole(domain.RoleAdmin, domain.RoleSeller)), h.ListOrders)
		orders.POST("",
			Guards(h.respond, guard.RequireRole(domain.RoleConsumer), guard.RequireActive()), h.Checkout)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id",
			Guards(h.respond, guard.RequireRole(domain.RoleAdmin, domain.RoleSeller)), h.UpdateOrderStatus)
		orders.DELETE("/:id", h.CancelOrder)
	}
}
