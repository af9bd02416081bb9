package handler

import (
	"fmt"
	"net/http"

	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/services/auction/helpers"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"

	"github.com/gin-gonic/gin"
)

type SessionServiceInterface interface {
	Login(email, password string) (string, model.User, error)
}

type AuthHandler struct {
	sessions SessionServiceInterface
}

func NewAuthHandler(sessions SessionServiceInterface) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginHandler handles POST /auth/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, user, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{"email": req.Email, "error": err.Error()})
		return
	}

	resp := helpers.LoginResponse{Token: token, User: user}
	utils.JSONResponse(c, http.StatusOK, resp, "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{
		"user_id": user.UserID,
		"role":    user.Role,
	})
}

// LogoutHandler handles POST /auth/logout. Sessions are stateless tokens,
// so logout is the client discarding its token; the endpoint exists so the
// front-end has an explicit teardown call.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, nil, "session cleared")
}
