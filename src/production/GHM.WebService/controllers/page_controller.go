package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/middleware"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/pages"
)

// PageController renders the static pages
type PageController struct{}

// NewPageController creates a new page controller
func NewPageController() *PageController {
	return &PageController{}
}

// RegisterRoutes registers the page routes with Gin
func (p *PageController) RegisterRoutes(router *gin.Engine) {
	router.GET("/", p.Landing)
	router.GET("/about", p.About)

	authed := router.Group("", middleware.RequireSession("/login"))
	{
		authed.GET("/home", p.Home)
		authed.GET("/dashboard", p.Home)
	}
}

func base(c *gin.Context, title string) pages.Base {
	session, ok := middleware.GetSession(c)
	return pages.NewBase(title, middleware.DisplayName(session), ok)
}

// Landing renders the marketing page
func (p *PageController) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, pages.Landing, pages.LandingData{
		Base:     base(c, "Greenhouse monitoring"),
		Features: pages.LandingFeatures,
	})
}

// Home renders the dashboard-navigation page
func (p *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, pages.Home, pages.HomeData{
		Base:     base(c, "Home"),
		Sections: pages.DashboardSections,
	})
}

// About renders the explanatory panel
func (p *PageController) About(c *gin.Context) {
	c.HTML(http.StatusOK, pages.About, pages.AboutData{
		Base: base(c, "About"),
		Thresholds: []pages.Threshold{
			{Label: string(ghmmodels.PredictionNormal), Rule: "25 °C or cooler"},
			{Label: string(ghmmodels.PredictionWarning), Rule: "above 25 °C up to 28 °C"},
			{Label: string(ghmmodels.PredictionAlert), Rule: "above 28 °C"},
		},
		Ranges: demo.RangeTokens,
	})
}
