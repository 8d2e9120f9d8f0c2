package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mpcs-reservation/internal/staffdir"
)

// setupRoutes mirrors the teacher's public/protected/admin route
// grouping, narrowed to the reservation engine's operation surface.
func (s *Server) setupRoutes() {
	s.router.Use(recovery(s.logger))
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))
	s.router.Use(securityHeaders())
	if s.config.EnableCORS {
		s.router.Use(cors(s.config.CORSOrigins))
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	api := s.router.Group("/api/v1")

	api.POST("/auth/login", s.handlers.Login)

	protected := api.Group("")
	protected.Use(s.authMiddleware)
	{
		protected.POST("/reservations", s.handlers.Reserve)
		protected.POST("/reservations/:id/cancel", s.handlers.Cancel)
		protected.GET("/reservations", s.handlers.ListReservations)
		protected.GET("/transactions", s.handlers.ListTransactions)
		protected.GET("/reports/financial", s.handlers.FinancialSummary)
		protected.GET("/feed", s.handlers.Feed)
	}

	admin := protected.Group("/admin")
	admin.Use(s.requireRole(staffdir.RoleAdmin))
	{
		admin.POST("/staff", s.handlers.CreateStaff)
		admin.PUT("/staff/:staff_id/role", s.handlers.UpdateStaffRole)
		admin.PUT("/staff/:staff_id/resources/:resource", s.handlers.GrantStaffResource)
		admin.DELETE("/staff/:staff_id", s.handlers.DeleteStaff)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, newErrorResponse("routing failed: endpoint not found"))
	})
}
