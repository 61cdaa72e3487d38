package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/service"
)

// Services bundles what the router dispatches to.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Teachers  *service.TeacherService
	Directory *service.DirectoryService
}

// SetupRouter sets up the Gin router
func SetupRouter(svc Services, metrics *Metrics, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), metrics.Middleware())

	// Create handlers
	users := NewUserHandlers(svc.Auth, svc.Users, metrics, logger)
	teachers := NewTeacherHandlers(svc.Auth, svc.Teachers, metrics, logger)
	directory := NewDirectoryHandlers(svc.Directory, logger)
	authenticated := AuthMiddleware(svc.Auth, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// User routes
	u := router.Group("/users")
	{
		u.POST("", users.Register)
		u.POST("/login", users.Login)
		u.POST("/logout", users.Logout)
		u.GET("/me", authenticated, RequireKind(core.KindUser, logger), users.Me)
		u.GET("", users.List)
		u.GET("/:id", users.Get)
		u.PUT("/:id", users.Update)
		u.DELETE("/:id", users.Delete)
	}

	// Teacher routes
	t := router.Group("/teachers")
	{
		t.POST("/auth/login", teachers.Login)
		t.POST("/auth/logout", teachers.Logout)
		t.POST("", teachers.Create)
		t.GET("", authenticated, teachers.List)
		t.GET("/:id", teachers.Get)
		t.PUT("/:id", teachers.Update)
		t.DELETE("/:id", teachers.Delete)
		t.PATCH("/updatePassword/:id", teachers.UpdatePassword)
	}

	// Directory routes
	p := router.Group("/persons")
	{
		p.POST("", directory.CreatePerson)
		p.GET("", directory.ListPersons)
		p.GET("/:id", directory.GetPerson)
	}

	r := router.Group("/roll")
	{
		r.POST("", directory.AddToRoll)
		r.GET("", directory.ListRoll)
	}

	return router
}
