// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the API mounts
type Handlers struct {
	Cart     *handlers.CartHandler
	Product  *handlers.ProductHandler
	Rental   *handlers.RentalHandler
	Checkout *handlers.CheckoutHandler
	Shack    *handlers.ShackHandler
}

// SetupRoutes mounts public and admin routes on rg
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	SetupProductRoutes(rg, h.Product)
	SetupRentalRoutes(rg, h.Rental)
	SetupCartRoutes(rg, h.Cart)
	SetupCheckoutRoutes(rg, h.Checkout)
	SetupShackRoutes(rg, h.Shack)
	SetupAdminRoutes(rg, h, tokens)
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler) {
	products := rg.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/slug/:slug", h.GetProductBySlug)
	}
}

// SetupRentalRoutes sets up fleet browsing and availability routes
func SetupRentalRoutes(rg *gin.RouterGroup, h *handlers.RentalHandler) {
	rentals := rg.Group("/rentals")
	{
		rentals.GET("", h.GetRentals)
		rentals.GET("/availability", h.GetAvailability)
		rentals.GET("/:id", h.GetRental)
	}
}

// SetupCartRoutes sets up guest cart routes, keyed by the session cookie
func SetupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.GET("/count", h.GetCartCount)
		cart.POST("/items", h.AddToCart)
		cart.PATCH("/items/:lineItemId", h.UpdateCartItem)
		cart.DELETE("/items/:lineItemId", h.RemoveFromCart)
		cart.DELETE("", h.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout and receipt routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler) {
	rg.POST("/checkout", h.Checkout)
	rg.GET("/orders/:id/receipt", h.GetReceipt)
}

// SetupShackRoutes sets up the vacation-rental listing routes
func SetupShackRoutes(rg *gin.RouterGroup, h *handlers.ShackHandler) {
	shack := rg.Group("/shack")
	{
		shack.GET("", h.GetListing)
		shack.POST("/inquiries", h.SubmitInquiry)
	}
}

// SetupAdminRoutes sets up back-office routes behind admin JWT auth
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers, tokens middleware.TokenValidator) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens))

	admin.GET("/session", handlers.WhoAmI)

	products := admin.Group("/products")
	{
		products.GET("", h.Product.AdminGetProducts)
		products.POST("", h.Product.CreateProduct)
		products.PUT("/:id", h.Product.UpdateProduct)
		products.DELETE("/:id", h.Product.DeleteProduct)
	}

	rentals := admin.Group("/rentals")
	{
		rentals.GET("", h.Rental.AdminGetAssets)
		rentals.POST("", h.Rental.CreateAsset)
		rentals.PUT("/:id", h.Rental.UpdateAsset)
		rentals.POST("/:id/cycle-status", h.Rental.CycleStatus)
		rentals.DELETE("/:id", h.Rental.DeleteAsset)
	}

	bookings := admin.Group("/bookings")
	{
		bookings.GET("", h.Rental.GetBookings)
		bookings.PATCH("/:id/status", h.Rental.UpdateBookingStatus)
		bookings.DELETE("/:id", h.Rental.DeleteBooking)
		bookings.POST("/batch-delete", h.Rental.BatchDeleteBookings)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", h.Checkout.GetOrders)
		orders.GET("/:id", h.Checkout.GetOrder)
		orders.GET("/:id/receipt", h.Checkout.GetReceipt)
		orders.PATCH("/:id/status", h.Checkout.UpdateOrderStatus)
		orders.DELETE("/:id", h.Checkout.DeleteOrder)
		orders.POST("/batch-delete", h.Checkout.BatchDeleteOrders)
	}

	admin.PUT("/shack", h.Shack.UpdateListing)

	inquiries := admin.Group("/inquiries")
	{
		inquiries.GET("", h.Shack.GetInquiries)
		inquiries.PATCH("/:id/toggle", h.Shack.ToggleInquiry)
		inquiries.DELETE("/:id", h.Shack.DeleteInquiry)
	}
}
