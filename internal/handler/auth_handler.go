package handler

import (
	"net/http"

	"qzone/internal/middleware"
	"qzone/internal/model"
	"qzone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration, login and the debug user listing
type AuthHandler struct {
	service service.AuthService
	metrics *middleware.Metrics
	log     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, metrics *middleware.Metrics, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{service: s, metrics: metrics, log: log}
}

// bindCredentials never fails: a body that is not a JSON object of strings counts as empty,
// so the service reports the missing fields.
func bindCredentials(c *gin.Context) model.CredentialsRequest {
	var req model.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return model.CredentialsRequest{}
	}
	return req
}

func (h *AuthHandler) Register(c *gin.Context) {
	req := bindCredentials(c)

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	h.metrics.ObserveIdentity("register", outcome(err))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("User registered")
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := bindCredentials(c)

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password, req.Role)
	h.metrics.ObserveIdentity("login", outcome(err))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// DebugUsers lists all users without password hashes
func (h *AuthHandler) DebugUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// RegisterAuthRoutes registers auth routes at the root, where the front end posts to them
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRoutes) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}
