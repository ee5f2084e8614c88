// Package controller provides the HTTP handlers for the EcoCart storefront
// API: authentication, catalog browsing, the shopping cart and the voice
// interpreter.
package controller

import (
	"net/http"

	"github.com/ecocart/ecocart/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the login check.
type BaseController struct{}

// checkLogin aborts unauthenticated requests with 401.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in to continue")
		c.Abort()
	} else {
		c.Next()
	}
}
