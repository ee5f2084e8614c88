package controller

import (
	"errors"
	"net/http"

	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/web/service"
	"github.com/ecocart/ecocart/web/session"

	"github.com/gin-gonic/gin"
)

// CredentialsForm is the register and login request body.
type CredentialsForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController handles registration, login, logout and the current-user
// lookup. Responses never contain the password hash: the model excludes it
// from JSON on every path.
type AuthController struct {
	BaseController

	userService    service.UserService
	sessionManager *session.Manager
}

// NewAuthController creates an AuthController and registers its routes.
// Extra handlers guard register and login only; the session probe and
// logout are never throttled.
func NewAuthController(g *gin.RouterGroup, sessionManager *session.Manager, credentialGuards ...gin.HandlerFunc) *AuthController {
	a := &AuthController{sessionManager: sessionManager}
	a.initRouter(g, credentialGuards)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup, credentialGuards []gin.HandlerFunc) {
	credential := g.Group("")
	credential.Use(credentialGuards...)
	credential.POST("/register", a.register)
	credential.POST("/login", a.login)

	g.POST("/logout", a.logout)
	g.GET("/user", a.currentUser)
}

// register creates an account and logs it in. The session is regenerated
// before the authenticated state is granted.
func (a *AuthController) register(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.userService.CreateUser(form.Username, form.Password)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			jsonError(c, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, service.ErrDuplicateUsername):
			jsonError(c, http.StatusBadRequest, "Username already exists")
		default:
			logger.Warning("create user err:", err)
			jsonError(c, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	if err := a.sessionManager.Login(c, user.Id); err != nil {
		logger.Error("establish session err:", err)
		jsonError(c, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	logger.Infof("%s registered, IP: %s", user.Username, getRemoteIp(c))
	c.JSON(http.StatusCreated, user)
}

// login verifies credentials and rotates the session. Unknown usernames and
// wrong passwords get the same generic response.
func (a *AuthController) login(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for username %q, IP: %s", form.Username, getRemoteIp(c))
		jsonError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := a.sessionManager.Login(c, user.Id); err != nil {
		logger.Error("establish session err:", err)
		jsonError(c, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.JSON(http.StatusOK, user)
}

// logout destroys the session and clears the cookie. Always 200, active
// session or not.
func (a *AuthController) logout(c *gin.Context) {
	if userId, ok := session.GetUserId(c); ok {
		logger.Infof("user %s logged out", userId)
	}
	a.sessionManager.Logout(c)
	c.Status(http.StatusOK)
}

// currentUser returns the logged-in user or 401 with an empty body.
func (a *AuthController) currentUser(c *gin.Context) {
	userId, ok := session.GetUserId(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := a.userService.GetUserById(userId)
	if err != nil {
		a.sessionManager.Logout(c)
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}
