package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	chart "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Chart"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/middleware"
)

// DemoController serves generated readings and chart ticks to the dashboard views
type DemoController struct {
	generator *demo.Generator
	logger    *logger.Logger
}

// NewDemoController creates a new demo controller
func NewDemoController(generator *demo.Generator, logger *logger.Logger) *DemoController {
	return &DemoController{
		generator: generator,
		logger:    logger,
	}
}

// RegisterRoutes registers the demo routes with Gin
func (d *DemoController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/demo/current", d.Current)
		api.GET("/demo/history", d.History)
		api.GET("/demo/local", d.Local)
		api.GET("/chart/ticks", d.Ticks)
	}
}

// Current returns one fresh reading
func (d *DemoController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, d.generator.DataPoint())
}

// History returns the 100 point series for ?range=
func (d *DemoController) History(c *gin.Context) {
	timeRange := c.DefaultQuery("range", demo.DefaultRange)
	readings := d.generator.Historical(timeRange)

	c.JSON(http.StatusOK, gin.H{
		"range": timeRange,
		"items": readings,
	})
}

// Local returns the diurnal series for ?hours=
func (d *DemoController) Local(c *gin.Context) {
	hours := parseHours(c.Query("hours"))
	c.JSON(http.StatusOK, gin.H{
		"hours": hours,
		"items": d.generator.LocalMock(hours),
	})
}

// Ticks returns axis labels for a generated series
func (d *DemoController) Ticks(c *gin.Context) {
	timeRange := c.DefaultQuery("range", demo.DefaultRange)

	var readings []ghmmodels.SensorReading
	switch series := c.DefaultQuery("series", "history"); series {
	case "history":
		readings = d.generator.Historical(timeRange)
	case "local":
		hours, ok := demo.RangeHours[timeRange]
		if !ok {
			hours = demo.RangeHours[demo.DefaultRange]
		}
		readings = d.generator.LocalMock(hours)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "series must be history or local"})
		return
	}

	ticks := chart.BuildReadingTicks(readings, timeRange)
	middleware.GetLogger(c, d.logger).Logger.Debug().
		Str("range", timeRange).
		Int("points", len(readings)).
		Int("ticks", len(ticks)).
		Msg("Built chart ticks")

	c.JSON(http.StatusOK, gin.H{
		"range":    timeRange,
		"interval": chart.CalculateTickInterval(len(readings), timeRange),
		"ticks":    ticks,
	})
}

func parseHours(raw string) int {
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return demo.RangeHours[demo.DefaultRange]
	}
	if hours > demo.MaxLocalMockHours {
		return demo.MaxLocalMockHours
	}
	return hours
}
