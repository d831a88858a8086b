package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rvc-001/planning-sub000/internal/usecase"
)

// Server wires the use cases into the JSON API: one route pair per
// workflow page, mirroring the pages the spreadsheet front end renders.
type Server struct {
	workflow  *usecase.WorkflowUseCase
	orders    *usecase.OrderUseCase
	dashboard *usecase.DashboardUseCase
	auth      *usecase.AuthUseCase
}

func NewServer(workflow *usecase.WorkflowUseCase, orders *usecase.OrderUseCase, dashboard *usecase.DashboardUseCase, auth *usecase.AuthUseCase) *Server {
	return &Server{
		workflow:  workflow,
		orders:    orders,
		dashboard: dashboard,
		auth:      auth,
	}
}

// Router builds the gin engine with CORS, auth and the page routes.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/login", s.handleLogin)

	protected := v1.Group("")
	protected.Use(s.authMiddleware())
	{
		protected.POST("/logout", s.handleLogout)
		protected.GET("/me", s.handleMe)

		protected.GET("/dashboard", s.requirePage("dashboard"), s.handleDashboard)

		protected.GET("/orders", s.requirePage("orders"), s.handleListOrders)
		protected.POST("/orders", s.requirePage("orders"), s.handleCreateOrder)
		protected.PUT("/orders/:rowIndex", s.requirePage("orders"), s.handleUpdateOrder)
		protected.GET("/orders/export", s.requirePage("orders"), s.handleExportOrders)

		protected.GET("/job-cards", s.requirePage("job-cards"), s.handleJobCardsPage)
		protected.POST("/job-cards", s.requirePage("job-cards"), s.handleIssueJobCard)

		for _, spec := range usecase.StageSpecs() {
			spec := spec
			group := protected.Group("/"+spec.PageID, s.requirePage(spec.PageID))
			group.GET("", s.handleStagePage(spec))
			group.GET("/export", s.handleExportStage(spec))
			if spec.PageID == "full-kitting" {
				group.POST("", s.handleKittingSubmit)
			} else {
				group.POST("", s.handleStageSubmit(spec))
			}
		}

		settings := protected.Group("/settings", s.requirePage("settings"))
		settings.GET("/users", s.handleListUsers)
		settings.POST("/users", s.handleAddUser)
		settings.PUT("/users/:id", s.handleUpdateUser)
		settings.DELETE("/users/:id", s.handleDeleteUser)
	}

	return r
}
