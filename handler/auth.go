package handler

import (
	"Revamp/middleware"
	"Revamp/models"
	"Revamp/pkg/context"
	"Revamp/pkg/response"
	"Revamp/service"
	"Revamp/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Guard       *Guard
	Limiter     middleware.Limiter
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.POST("/register", middleware.RateLimit(u.Limiter, "10/minute"), context.Wrap(u.Register))
	auth.POST("/login", middleware.RateLimit(u.Limiter, "20/minute"), context.Wrap(u.Login))
	auth.POST("/token", middleware.RateLimit(u.Limiter, "20/minute"), context.Wrap(u.Token))
	auth.POST("/guest", middleware.RateLimit(u.Limiter, "20/minute"), context.Wrap(u.Guest))
	auth.GET("/me", u.Guard.Authorize, u.Guard.Active, context.Wrap(u.Me))
	auth.PUT("/me", u.Guard.Authorize, u.Guard.Active, context.Wrap(u.UpdateMe))
}

func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	user, err := u.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, toUser(user))
	return nil
}

// Login JSON 登录，email 字段也可以填用户名
func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	return u.issue(c, req.Email, req.Password)
}

// Token OAuth2 password 表单登录
func (u *Auth) Token(c *gin.Context) error {
	var form types.TokenForm
	if err := c.ShouldBind(&form); err != nil {
		return invalidRequest(err)
	}
	return u.issue(c, form.Username, form.Password)
}

// Guest 游客 token，只能访问公开接口
func (u *Auth) Guest(c *gin.Context) error {
	tok, err := u.AuthService.IssueGuestToken()
	if err != nil {
		return err
	}
	response.Success(c, types.TokenResponse{AccessToken: tok, TokenType: "bearer"})
	return nil
}

func (u *Auth) Me(c *gin.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	response.Success(c, toUser(user))
	return nil
}

func (u *Auth) UpdateMe(c *gin.Context) error {
	var req types.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidRequest(err)
	}
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	updated, err := u.AuthService.UpdateMe(c.Request.Context(), user, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, toUser(updated))
	return nil
}

func (u *Auth) issue(c *gin.Context, login, password string) error {
	user, err := u.AuthService.Authenticate(c.Request.Context(), login, password)
	if err != nil {
		return bizError(err)
	}
	tok, err := u.AuthService.IssueToken(user)
	if err != nil {
		return err
	}
	response.Success(c, types.TokenResponse{AccessToken: tok, TokenType: "bearer"})
	return nil
}

func toUser(m *models.User) types.UserResponse {
	return types.UserResponse{
		ID:                  m.ID,
		Email:               m.Email,
		Username:            m.Username,
		FullName:            m.FullName,
		IsActive:            m.IsActive,
		PreferredZones:      service.PreferredZones(m),
		NotificationEnabled: m.NotificationEnabled,
		MaxParkingDuration:  m.MaxParkingDuration,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
