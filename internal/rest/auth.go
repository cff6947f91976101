package rest

import (
	"crypto/subtle"
	"net/http"

	"aiAutomate/internal/middleware"
	"aiAutomate/pkg/logger"
	"aiAutomate/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AuthHandler struct {
		validate     *validator.Validate
		username     string
		passwordHash string
	}

	LoginInput struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
)

// NewAuthHandler authenticates the single operator account configured by env.
func NewAuthHandler(username, passwordHash string) *AuthHandler {
	return &AuthHandler{
		validate:     validator.New(),
		username:     username,
		passwordHash: passwordHash,
	}
}

// POST /api/v1/admin/login
func (h *AuthHandler) Login(c echo.Context) error {
	var request LoginInput
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	userOK := subtle.ConstantTimeCompare([]byte(request.Username), []byte(h.username)) == 1
	if h.passwordHash == "" || !utils.CheckPassword(request.Password, h.passwordHash) || !userOK {
		logger.Warn("Admin login failed", "username", request.Username)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid username or password"})
	}

	token, err := utils.GenerateJWT(h.username, middleware.RoleAdmin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{"token": token}))
}
