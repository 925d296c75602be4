package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	authform "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.AuthForm"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/controllers"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/middleware"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/pages"
)

// Dependencies are what the routes need from the container
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Auth      authform.Authenticator
	Generator *demo.Generator
}

// New builds the gin engine with every route registered
func New(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := pages.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	if deps.Generator == nil {
		deps.Generator = demo.Default()
	}

	cfg := deps.Config

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))
	router.Use(middleware.LoadSession(cfg.Session))

	controllers.NewHealthController(cfg.Auth.APIBase).RegisterRoutes(router)
	controllers.NewPageController().RegisterRoutes(router)
	controllers.NewAuthController(deps.Auth, cfg.Session, deps.Logger).RegisterRoutes(router)
	controllers.NewDemoController(deps.Generator, deps.Logger).RegisterRoutes(router)

	return router, nil
}
