package controller

import (
	"net/http"

	"github.com/ecocart/ecocart/web/service"

	"github.com/gin-gonic/gin"
)

// VoiceForm is the voice interpretation request body.
type VoiceForm struct {
	Transcript string `json:"transcript" form:"transcript"`
}

// VoiceController serves the mocked voice-shopping interpreter.
type VoiceController struct {
	BaseController

	voiceService service.VoiceService
}

// NewVoiceController creates a VoiceController and registers its routes.
func NewVoiceController(g *gin.RouterGroup) *VoiceController {
	a := &VoiceController{}
	a.initRouter(g)
	return a
}

func (a *VoiceController) initRouter(g *gin.RouterGroup) {
	g.POST("/voice/interpret", a.interpret)
}

func (a *VoiceController) interpret(c *gin.Context) {
	var form VoiceForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	jsonObj(c, a.voiceService.Interpret(form.Transcript), nil)
}
