// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/middleware"
)

// WhoAmI handles GET /admin/session so the back office can check its token
func WhoAmI(c *gin.Context) {
	email, _ := middleware.GetAdminEmailFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Admin session is valid",
		"data":    gin.H{"email": email},
	})
}
