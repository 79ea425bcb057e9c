package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

const landingPage = "registration.html"

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves health and the static front end
type SystemHandler struct {
	store     Pinger
	staticDir string
	fileSrv   http.Handler
	now       func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(store Pinger, staticDir string) *SystemHandler {
	return &SystemHandler{
		store:     store,
		staticDir: staticDir,
		fileSrv:   http.FileServer(http.Dir(staticDir)),
		now:       time.Now,
	}
}

// Health always answers 200; the store state is reported in the body
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	state := "connected"
	if err := h.store.Ping(ctx); err != nil {
		state = "disconnected"
	}

	// "mongodb" is the key existing clients read.
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"mongodb":   state,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Landing(c *gin.Context) {
	path := filepath.Join(h.staticDir, landingPage)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.File(path)
}

// Static serves front-end assets for GET and HEAD requests no route matched
func (h *SystemHandler) Static(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.fileSrv.ServeHTTP(c.Writer, c.Request)
}
