package handler

import (
	"Revamp/pkg/response"
	"Revamp/service"
	"errors"
	"net/http"
)

// statusOf 业务错误对应的 http 状态码
func statusOf(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrFavoriteExists),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrUserTaken),
		errors.Is(err, service.ErrInactiveUser):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrIncorrectLogin):
		return http.StatusUnauthorized, true
	case errors.Is(err, service.ErrGuest):
		return http.StatusForbidden, true
	case errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

// bizError 已知的业务错误转为 BizError，其余原样返回由 Wrap 输出 500
func bizError(err error) error {
	if status, ok := statusOf(err); ok {
		be := response.NewError(status, err.Error())
		if status == http.StatusUnauthorized {
			be.WithHeader("WWW-Authenticate", "Bearer")
		}
		return be
	}
	var ue *service.ZoneUnavailableError
	if errors.As(err, &ue) {
		return response.NewDetailError(http.StatusServiceUnavailable, ue.Error(), ue.Detail)
	}
	return err
}

// invalidRequest 请求体校验失败
func invalidRequest(err error) error {
	return response.NewError(http.StatusUnprocessableEntity, err.Error())
}
