package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/cache"
	"gopherblog/internal/pkg/hasher"
	"gopherblog/internal/platform/database"
	rabbitmqClient "gopherblog/internal/platform/rabbitmq"
	redisClient "gopherblog/internal/platform/redis"
	"gopherblog/internal/repository"
	"gopherblog/internal/session"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
	"gopherblog/web"
)

// Deps is everything the HTTP layer needs, already constructed.
type Deps struct {
	AuthService   *appsvc.AuthService
	BlogService   *appsvc.BlogService
	Health        *handler.HealthHandler
	Logger        *logrus.Logger
	Secret        string
	SessionMaxAge int
	SecureCookies bool
	GinMode       string
}

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	cfg := app.Config

	userRepo := repository.NewUserRepository(app.DB)
	blogRepo := repository.NewBlogRepository(app.DB)
	sessionStore := session.NewStore(app.Redis, cfg.SessionTTL())
	indexCache := cache.NewIndexCache(app.Redis, cfg.IndexCacheTTL())

	var events appsvc.EventPublisher
	mqProbe := handler.Probe(nil)
	if app.MQConn != nil {
		events = rabbitmqClient.NewEventPublisher(app.MQConn, cfg.RabbitMQ.EventQueue)
		mqProbe = func(context.Context) error { return rabbitmqClient.Ping(app.MQConn) }
	}

	authService := appsvc.NewAuthService(
		userRepo,
		sessionStore,
		hasher.Bcrypt{},
		events,
		cfg.Auth.SecretKey,
		cfg.SessionTTL(),
		app.Logger,
	)
	blogService := appsvc.NewBlogService(blogRepo, indexCache, events, cfg.App.PageSize, app.Logger)

	health := handler.NewHealthHandler(cfg.App.Name, cfg.App.Env, app.StartedAt, map[string]handler.Probe{
		"database": func(ctx context.Context) error { return database.Ping(ctx, app.DB) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx, app.Redis) },
		"rabbitmq": mqProbe,
	})

	return NewEngine(Deps{
		AuthService:   authService,
		BlogService:   blogService,
		Health:        health,
		Logger:        app.Logger,
		Secret:        cfg.Auth.SecretKey,
		SessionMaxAge: int(cfg.SessionTTL() / time.Second),
		SecureCookies: cfg.IsProd(),
		GinMode:       cfg.App.GinMode,
	})
}

func NewEngine(deps Deps) (*gin.Engine, error) {
	if deps.GinMode != "" {
		gin.SetMode(deps.GinMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger), middleware.Recovery(deps.Logger))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates failed: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", web.Static())
	router.GET("/healthz", deps.Health.Check)

	flash := middleware.Flash(deps.Secret, deps.SecureCookies)
	sess := middleware.Session(deps.AuthService, deps.SecureCookies, deps.Logger)
	csrf := middleware.CSRF(deps.SecureCookies, deps.Logger)

	publicHandler := handler.NewPublicHandler(deps.BlogService, deps.Logger)
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.SessionMaxAge, deps.SecureCookies, deps.Logger)
	blogHandler := handler.NewBlogHandler(deps.BlogService, deps.Logger)

	pages := router.Group("/", flash, sess, csrf)
	pages.GET("/", publicHandler.Index)
	pages.GET("/read/:id", publicHandler.Read)
	pages.GET("/signup", authHandler.SignupPage)
	pages.POST("/signup", authHandler.Signup)
	pages.GET("/signin", authHandler.SigninPage)
	pages.POST("/signin", authHandler.Signin)
	pages.GET("/logout", middleware.RequireLogin(), authHandler.Logout)

	blogGroup := pages.Group("/blog", middleware.RequireLogin())
	blogGroup.GET("", blogHandler.MyBlogs)
	blogGroup.GET("/create", blogHandler.CreatePage)
	blogGroup.POST("/create", blogHandler.Create)
	blogGroup.GET("/view/:id", blogHandler.View)
	blogGroup.GET("/edit/:id", blogHandler.EditPage)
	blogGroup.POST("/edit/:id", blogHandler.Edit)
	blogGroup.GET("/status/:id", blogHandler.ToggleStatus)
	blogGroup.GET("/delete/:id", blogHandler.Delete)

	router.NoRoute(flash, sess, response.NotFound)
	return router, nil
}
