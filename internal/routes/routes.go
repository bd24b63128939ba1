package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsnteam/telemart-golang/internal/handlers"
	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/middleware"
)

// CORSMiddleware allows the configured frontend origins to call us with
// credentials and answers preflight OPTIONS for every path.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
			c.Writer.Header().Set("Vary", "Origin")
		}

		// The browser sends an empty OPTIONS request first to check
		// permissions. Reply with 204 No Content.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupRouter wires the route table. Paths are kept exactly as the
// frontend already calls them.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())

	// CORS must run before anything that can answer a request.
	router.Use(CORSMiddleware(h.Cfg.AllowedOrigins))

	// --- User Routes (Public) ---
	router.POST("/newuser", h.RegisterUser)
	router.POST("/login", h.Login)
	// Logout stays outside the auth gate: destroying a session that no
	// longer exists still succeeds.
	router.POST("/logout", h.Logout)

	// --- Product Routes (Public) ---
	router.GET("/products", h.GetProducts)
	router.GET("/products/:category", h.GetProductsByCategory)
	router.POST("/newproducts", h.CreateProducts)

	// --- Cart Routes (Login Required) ---
	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(h.Sessions, h.Cfg.SessionSecret))
	{
		auth.POST("/cartpost", h.AddToCart)
		auth.GET("/cart", h.GetCart)
		auth.DELETE("/cart/:id", h.DeleteCartItem)
		auth.POST("/send-cart-email", h.SendCartEmail)
		auth.POST("/cart/send-email", h.SendCartEmail)
	}

	return router
}
