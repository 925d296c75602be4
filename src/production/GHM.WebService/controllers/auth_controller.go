package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authform "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.AuthForm"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/middleware"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/pages"
)

// AuthController serves the login and register forms
type AuthController struct {
	auth    authform.Authenticator
	session config.SessionConfig
	logger  *logger.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(auth authform.Authenticator, session config.SessionConfig, logger *logger.Logger) *AuthController {
	return &AuthController{
		auth:    auth,
		session: session,
		logger:  logger,
	}
}

// RegisterRoutes registers the auth routes with Gin
func (h *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", h.showForm(authform.ModeLogin))
	router.GET("/register", h.showForm(authform.ModeRegister))
	router.POST("/login", h.submit(authform.ModeLogin))
	router.POST("/register", h.submit(authform.ModeRegister))
	router.POST("/logout", h.Logout)

	router.GET("/api/session", middleware.RequireSessionJSON(), h.Session)
}

func (h *AuthController) showForm(mode authform.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetSession(c); ok {
			c.Redirect(http.StatusSeeOther, authform.DashboardPath)
			return
		}
		h.render(c, http.StatusOK, authform.NewForm(mode))
	}
}

func (h *AuthController) submit(mode authform.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := authform.NewForm(mode)
		if err := c.ShouldBind(&form.Credentials); err != nil {
			form.Error = authform.MsgUnexpected
			h.render(c, http.StatusBadRequest, form)
			return
		}

		reqLogger := middleware.GetLogger(c, h.logger).WithComponent("auth-form")
		controller := authform.NewController(h.auth, middleware.NewCookieStorage(c, h.session), authform.Options{
			SessionTTL: h.session.MaxAge,
			Logger:     reqLogger,
			OnAuthenticated: func(s ghmmodels.Session) {
				middleware.SetSession(c, &s)
			},
		})

		result := controller.Submit(c.Request.Context(), form)
		if !result.OK() {
			h.render(c, statusFor(result.Err), form)
			return
		}

		c.Redirect(http.StatusSeeOther, result.Redirect)
	}
}

// statusFor picks the response code that goes with a failed submission
func statusFor(err error) int {
	var validationErr *authform.ValidationError
	var serverErr *authform.ServerError
	var transportErr *authform.TransportError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, authform.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.As(err, &serverErr):
		if serverErr.StatusCode >= 400 && serverErr.StatusCode < 500 {
			return serverErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuthController) render(c *gin.Context, status int, form *authform.Form) {
	title := "Sign in"
	if form.IsRegister() {
		title = "Register"
	}
	c.HTML(status, pages.Auth, pages.AuthData{
		Base:      pages.NewBase(title, "", false),
		Register:  form.IsRegister(),
		Error:     form.Error,
		Username:  form.Credentials.Username,
		FirstName: form.Credentials.FirstName,
		LastName:  form.Credentials.LastName,
	})
}

// Logout drops the session cookies
func (h *AuthController) Logout(c *gin.Context) {
	if err := authform.ClearSession(middleware.NewCookieStorage(c, h.session)); err != nil {
		middleware.GetLogger(c, h.logger).ErrorWithError(err, "Failed to clear session")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Session returns the restored session user to scripts on the page
func (h *AuthController) Session(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"user": session.User,
	})
}
