package handler

import (
	"Revamp/dao"
	"Revamp/middleware"
	"Revamp/models"
	"Revamp/pkg/context"
	"Revamp/pkg/response"
	"Revamp/pkg/utils"
	"Revamp/service"
	"Revamp/types"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Favorite struct {
	Guard           *Guard
	Limiter         middleware.Limiter
	HashID          *utils.HashID
	FavoriteService service.IFavoriteService
}

func (h *Favorite) RegisterRouter(r gin.IRouter) {
	g := r.Group("/favorites", h.Guard.Authorize, h.Guard.Active)
	g.GET("/", middleware.RateLimit(h.Limiter, "60/minute"), context.Wrap(h.List))
	g.POST("/", middleware.RateLimit(h.Limiter, "30/minute"), context.Wrap(h.Add))
	g.PATCH("/reorder", middleware.RateLimit(h.Limiter, "30/minute"), context.Wrap(h.Reorder))
	g.PUT("/:id", middleware.RateLimit(h.Limiter, "30/minute"), context.Wrap(h.Update))
	g.DELETE("/:id", middleware.RateLimit(h.Limiter, "30/minute"), context.Wrap(h.Remove))
	g.POST("/:id/use", middleware.RateLimit(h.Limiter, "60/minute"), context.Wrap(h.Use))
}

// List 按 display_order 返回当前用户的收藏
func (h *Favorite) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	favs, err := h.FavoriteService.List(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	out := make([]types.FavoriteZone, 0, len(favs))
	for _, f := range favs {
		out = append(out, h.toFavorite(f))
	}
	response.Success(c, out)
	return nil
}

func (h *Favorite) Add(c *gin.Context) error {
	var req types.FavoriteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	fav, err := h.FavoriteService.Add(c.Request.Context(), uid, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, h.toFavorite(fav))
	return nil
}

func (h *Favorite) Update(c *gin.Context) error {
	id, err := h.favoriteID(c)
	if err != nil {
		return err
	}
	var req types.FavoriteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	fav, err := h.FavoriteService.Update(c.Request.Context(), uid, id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, h.toFavorite(fav))
	return nil
}

func (h *Favorite) Remove(c *gin.Context) error {
	id, err := h.favoriteID(c)
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	if err := h.FavoriteService.Remove(c.Request.Context(), uid, id); err != nil {
		return bizError(err)
	}
	response.Success(c, response.Message{Message: "Favorite zone removed successfully"})
	return nil
}

// Reorder 任一 id 不属于当前用户时整体失败
func (h *Favorite) Reorder(c *gin.Context) error {
	var req types.FavoriteReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	items := make([]dao.OrderItem, 0, len(req.Order))
	for _, it := range req.Order {
		id, err := h.HashID.Decode(it.ID)
		if err != nil {
			return response.NewError(http.StatusNotFound, fmt.Sprintf("Favorite %s not found", it.ID))
		}
		items = append(items, dao.OrderItem{ID: id, DisplayOrder: it.DisplayOrder})
	}

	if err := h.FavoriteService.Reorder(c.Request.Context(), uid, items); err != nil {
		if missing, ok := dao.IsMissing(err); ok {
			return response.NewError(http.StatusNotFound, fmt.Sprintf("Favorite %s not found", h.HashID.Encode(missing)))
		}
		return err
	}
	response.Success(c, response.Message{Message: "Favorites reordered successfully"})
	return nil
}

// Use 使用次数加一
func (h *Favorite) Use(c *gin.Context) error {
	id, err := h.favoriteID(c)
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	n, err := h.FavoriteService.RecordUsage(c.Request.Context(), uid, id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.FavoriteUsageResponse{Message: "Zone usage recorded", TimesUsed: n})
	return nil
}

// favoriteID 解析不了的 id 视为不存在
func (h *Favorite) favoriteID(c *gin.Context) (uint64, error) {
	id, err := h.HashID.Decode(c.Param("id"))
	if err != nil {
		return 0, bizError(service.ErrFavoriteNotFound)
	}
	return id, nil
}

func (h *Favorite) toFavorite(f *models.FavoriteZone) types.FavoriteZone {
	return types.FavoriteZone{
		ID:              h.HashID.Encode(f.ID),
		UserID:          f.UserID,
		ZoneCode:        f.ZoneCode,
		ZoneDescription: f.ZoneDescription,
		Notes:           f.Notes,
		DisplayOrder:    f.DisplayOrder,
		TimesUsed:       f.TimesUsed,
		LastUsed:        f.LastUsed,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}
