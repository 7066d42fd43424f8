package zone

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateZone godoc
// @Summary      Create gym zone
// @Description  Creates a bookable gym zone with capacity and operating hours. Owner only.
// @Tags         zones
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateZoneRequest  true  "Gym zone data"
// @Success      201      {object}  GymZone
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/zones [post]
func (h *Handler) CreateZone(c *gin.Context) {
	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.service.CreateZone(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidZone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone: capacity must be positive and open time before close time"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone"})
		return
	}

	c.JSON(http.StatusCreated, zone)
}

// ListZones godoc
// @Summary      List gym zones
// @Tags         zones
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   GymZone
// @Failure      500  {object}  gin.H
// @Router       /zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	zones, err := h.service.GetAllZones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}

	c.JSON(http.StatusOK, zones)
}

// GetZone godoc
// @Summary      Get gym zone
// @Tags         zones
// @Security     BearerAuth
// @Produce      json
// @Param        zoneID  path      int  true  "Gym zone ID"
// @Success      200     {object}  GymZone
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /zones/{zoneID} [get]
func (h *Handler) GetZone(c *gin.Context) {
	zoneID, err := strconv.Atoi(c.Param("zoneID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID"})
		return
	}

	zone, err := h.service.GetZoneByID(c.Request.Context(), zoneID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gym zone not found"})
		return
	}

	c.JSON(http.StatusOK, zone)
}

// UpdateZone godoc
// @Summary      Update gym zone
// @Description  Replaces a zone's capacity, hours and flags. Owner only.
// @Tags         zones
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        zoneID   path      int                true  "Gym zone ID"
// @Param        request  body      UpdateZoneRequest  true  "Gym zone data"
// @Success      200      {object}  GymZone
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/zones/{zoneID} [put]
func (h *Handler) UpdateZone(c *gin.Context) {
	zoneID, err := strconv.Atoi(c.Param("zoneID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID"})
		return
	}

	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.service.UpdateZone(c.Request.Context(), zoneID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrZoneNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym zone not found"})
		case errors.Is(err, ErrInvalidZone):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone: capacity must be positive and open time before close time"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update zone"})
		}
		return
	}

	c.JSON(http.StatusOK, zone)
}
