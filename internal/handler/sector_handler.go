package handler

import (
	"net/http"

	"qzone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SectorHandler serves sector analytics and the sample-data admin endpoints
type SectorHandler struct {
	service service.SectorService
	log     *logrus.Logger
}

// NewSectorHandler creates a new SectorHandler
func NewSectorHandler(s service.SectorService, log *logrus.Logger) *SectorHandler {
	return &SectorHandler{service: s, log: log}
}

func (h *SectorHandler) Sectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Sectors())
}

func (h *SectorHandler) InfectionHistory(c *gin.Context) {
	records, err := h.service.InfectionHistory(c.Request.Context(), c.Param("sector"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *SectorHandler) ResourceData(c *gin.Context) {
	data, err := h.service.ResourceData(c.Request.Context(), c.Param("sector"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *SectorHandler) SeedInfection(c *gin.Context) {
	n, err := h.service.SeedInfection(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.WithField("count", n).Info("Infection history reseeded")
	c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
}

func (h *SectorHandler) SeedResources(c *gin.Context) {
	msg, err := h.service.SeedResources(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info(msg)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// RegisterSectorRoutes registers sector routes under the /api group
func (h *SectorHandler) RegisterSectorRoutes(rg *gin.RouterGroup) {
	rg.GET("/sectors", h.Sectors)
	rg.GET("/infection-history/:sector", h.InfectionHistory)
	rg.GET("/resource-data/:sector", h.ResourceData)

	admin := rg.Group("/admin")
	{
		admin.POST("/sample-infection", h.SeedInfection)
		admin.POST("/sample-resources", h.SeedResources)
	}
}
