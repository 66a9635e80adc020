package handler

import (
	"github.com/deppfellow/dashboard-data/internal/middleware"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/deppfellow/dashboard-data/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// Login checks the credentials and returns the user. Issuing a session is
// left to the caller.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*model.User, error) {
	user, err := h.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	c.Set(middleware.UserIDKey, user.ID.String())
	return user, nil
}
