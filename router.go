package main

import (
	"fmt"
	"net/http"

	"sick-fits/controllers"
	"sick-fits/dto"
	"sick-fits/graph"
	"sick-fits/logging"
	"sick-fits/middlewares"
	"sick-fits/models"
	"sick-fits/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "sick-fits"

func setupRouter(a *app) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			return nil, fmt.Errorf("register validations: %w", err)
		}
	}

	itemController := controllers.NewItemController(a.items)
	authController := controllers.NewAuthController(a.auth, a.cookies)
	userController := controllers.NewUserController(a.users)

	graphHandler, err := graph.NewHandler(graph.NewResolver(a.auth, a.users, a.items, a.cookies))
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logging.New("http")))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{a.cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.CurrentUser(a.auth, a.cookies))

	r.GET("/health", func(ctx *gin.Context) {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/graphql", graphHandler.Serve)

	itemRouter := r.Group("/items")
	itemRouterWithAuth := r.Group("/items", middlewares.RequireUser())
	authRouter := r.Group("/auth")
	userRouterWithPermission := r.Group("/users",
		middlewares.RequirePermission(models.PermissionAdmin, models.PermissionPermissionUpdate))

	itemRouter.GET("", itemController.FindAll)
	itemRouter.GET("/:id", itemController.FindById)
	itemRouterWithAuth.POST("", itemController.Create)
	itemRouterWithAuth.POST("/images", itemController.RequestImageUpload)
	itemRouterWithAuth.PUT("/:id", itemController.Update)
	itemRouterWithAuth.DELETE("/:id", itemController.Delete)

	authRouter.POST("/signup", authController.Signup)
	authRouter.POST("/signin", authController.Signin)
	authRouter.POST("/signout", authController.Signout)
	authRouter.POST("/request-reset", authController.RequestReset)
	authRouter.POST("/reset-password", authController.ResetPassword)
	authRouter.GET("/me", authController.Me)

	userRouterWithPermission.GET("", userController.List)
	userRouterWithPermission.PUT("/:id/permissions", userController.UpdatePermissions)

	web.NewHandler(a.auth, a.users, a.items, a.cookies).Register(r)

	return r, nil
}
