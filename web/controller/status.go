package controller

import (
	"strconv"

	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/web/service"

	"github.com/gin-gonic/gin"
)

// StatusController exposes the public health probe and, behind a login,
// the diagnostics surface: buffered logs and the settings aggregate.
type StatusController struct {
	BaseController

	statusService  service.StatusService
	settingService service.SettingService
}

// NewStatusController creates a StatusController and registers its routes.
func NewStatusController(g *gin.RouterGroup) *StatusController {
	a := &StatusController{}
	a.initRouter(g)
	return a
}

func (a *StatusController) initRouter(g *gin.RouterGroup) {
	g.GET("/status", a.getStatus)

	diag := g.Group("")
	diag.Use(a.checkLogin)
	diag.POST("/logs/:count", a.getLogs)
	diag.GET("/settings", a.getAllSetting)
}

func (a *StatusController) getStatus(c *gin.Context) {
	jsonObj(c, a.statusService.GetStatus(), nil)
}

// getLogs retrieves buffered application logs filtered by count and level.
func (a *StatusController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count < 1 {
		count = 50
	}
	level := c.PostForm("level")
	if level == "" {
		level = "info"
	}
	jsonObj(c, logger.GetLogs(count, level), nil)
}

func (a *StatusController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	jsonObj(c, allSetting, err)
}
