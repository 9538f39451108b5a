package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"comptable/internal/format"
	"comptable/internal/middleware"
	"comptable/internal/services"
	"comptable/internal/session"
)

// RouterOptions holds everything the HTTP shell is built from. A nil DB
// starts the shell in setup mode: only the session and connection-test
// routes are served, so the client can show the connection settings screen.
type RouterOptions struct {
	DB         *gorm.DB
	Session    *session.Session
	Tokens     *middleware.TokenIssuer
	Formatter  *format.Formatter
	ConfigPath string
	Location   *time.Location
}

// NewRouter builds the gin engine with every route of the shell.
func NewRouter(opts RouterOptions) *gin.Engine {
	sess := opts.Session

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler(sess))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/api/health", func(c *gin.Context) {
		status := "ok"
		if opts.DB == nil {
			status = "setup"
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	})

	v1 := router.Group("/api/v1")

	sessionHandler := NewSessionHandler(sess)
	v1.GET("/session", sessionHandler.GetSession)
	v1.POST("/session/logout", sessionHandler.Logout)
	v1.POST("/session/back", sessionHandler.Back)
	v1.DELETE("/session/error", sessionHandler.DismissError)

	configHandler := NewConfigHandler(opts.ConfigPath)
	v1.POST("/config/test", configHandler.TestConnection)

	if opts.DB == nil {
		return router
	}

	// Initialize services
	db := opts.DB
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	operationService := services.NewOperationService(db, accountService, opts.Location)
	reportService := services.NewReportService(db, accountService, opts.Location)
	establishmentService := services.NewEstablishmentService(db)
	accountTypeService := services.NewAccountTypeService(db)
	categoryService := services.NewCategoryService(db)

	// Initialize handlers
	authHandler := NewAuthHandler(userService, sess, opts.Tokens)
	accountHandler := NewAccountHandler(accountService, reportService, sess, opts.Formatter)
	operationHandler := NewOperationHandler(operationService, categoryService, sess, opts.Formatter)
	reportHandler := NewReportHandler(reportService, opts.Formatter)
	establishmentHandler := NewLabelHandler(establishmentService, sess, "establishment", "establishments")
	accountTypeHandler := NewLabelHandler(accountTypeService, sess, "account_type", "account_types")
	categoryHandler := NewLabelHandler(categoryService, sess, "category", "categories")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.Tokens, sess))

	accounts := protected.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/export", accountHandler.ExportAccounts)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/operations", operationHandler.ListOperations)
	accounts.GET("/:id/categories", reportHandler.CategoryBreakdown)

	reports := protected.Group("/reports")
	reports.GET("/accounts", reportHandler.AccountSummaries)

	operations := protected.Group("/operations")
	operations.POST("", operationHandler.CreateOperation)
	operations.PUT("/:id", operationHandler.UpdateOperation)
	operations.DELETE("/:id", operationHandler.DeleteOperation)

	registerLabelRoutes(protected.Group("/establishments"), establishmentHandler)
	registerLabelRoutes(protected.Group("/account-types"), accountTypeHandler)
	registerLabelRoutes(protected.Group("/categories"), categoryHandler)

	return router
}

func registerLabelRoutes[T any](g *gin.RouterGroup, h *LabelHandler[T]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Rename)
	g.DELETE("/:id", h.Delete)
}
