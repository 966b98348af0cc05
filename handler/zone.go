package handler

import (
	"Revamp/middleware"
	"Revamp/pkg/context"
	"Revamp/pkg/response"
	"Revamp/service"
	"Revamp/types"

	"github.com/gin-gonic/gin"
)

type Zone struct {
	Limiter     middleware.Limiter
	ZoneService service.IZoneService
}

func (h *Zone) RegisterRouter(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/data", middleware.RateLimit(h.Limiter, "120/minute"), context.Wrap(h.DefaultData))
	api.POST("/data", middleware.RateLimit(h.Limiter, "120/minute"), context.Wrap(h.Data))
	api.GET("/zones", middleware.RateLimit(h.Limiter, "20/minute"), context.Wrap(h.Descriptions))
	api.GET("/zones/:code", middleware.RateLimit(h.Limiter, "60/minute"), context.Wrap(h.Coordinates))
	api.GET("/raw-zones", middleware.RateLimit(h.Limiter, "20/minute"), context.Wrap(h.RawZones))
	api.GET("/filter/description_to_zones", middleware.RateLimit(h.Limiter, "60/minute"), context.Wrap(h.DescriptionToZones))
}

// DefaultData 校园默认范围
func (h *Zone) DefaultData(c *gin.Context) error {
	resp, err := h.ZoneService.ParkingData(c.Request.Context(), nil)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Zone) Data(c *gin.Context) error {
	var req types.BoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	b := req.Bounds()
	resp, err := h.ZoneService.ParkingData(c.Request.Context(), &b)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Zone) Descriptions(c *gin.Context) error {
	resp, err := h.ZoneService.Descriptions(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Zone) Coordinates(c *gin.Context) error {
	resp, err := h.ZoneService.Coordinates(c.Request.Context(), c.Param("code"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Zone) RawZones(c *gin.Context) error {
	resp, err := h.ZoneService.RawZones(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Zone) DescriptionToZones(c *gin.Context) error {
	resp, err := h.ZoneService.DescriptionToZones(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// Health 存活检查
func Health(c *gin.Context) {
	response.Success(c, types.HealthResponse{Status: "ok"})
}
