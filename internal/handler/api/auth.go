package api

import (
	"errors"
	"net/http"

	reqdto "crafty-kid/internal/handler/dto/request"
	resdto "crafty-kid/internal/handler/dto/response"
	"crafty-kid/internal/handler/httperr"
	"crafty-kid/internal/handler/middleware"
	"crafty-kid/internal/pkg/config"
	"crafty-kid/internal/pkg/cookie"
	"crafty-kid/internal/pkg/jwt"
	"crafty-kid/internal/usecase/commands"
	"crafty-kid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds       commands.AuthCommands
	q          queries.UserQueries
	jwtService *jwt.Service
	cookieCfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:       cmds,
		q:          q,
		jwtService: jwtService,
		cookieCfg:  cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, queries.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, queries.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg,
		result.TokenPair.AccessToken, result.TokenPair.RefreshToken,
		h.jwtService.AccessTokenDuration(), h.jwtService.RefreshTokenDuration())

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		UserID:      result.UserID.String(),
		Role:        result.Role,
	})
}

// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request (cookie fallback)"
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Refresh token required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, err := h.cmds.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired refresh token", nil)
		}
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg,
		pair.AccessToken, pair.RefreshToken,
		h.jwtService.AccessTokenDuration(), h.jwtService.RefreshTokenDuration())

	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken})
}

// @Summary User logout
// @Description Clear session cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CurrentUserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "User not authenticated", nil)
		return
	}

	user, err := h.q.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, queries.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuthorizedUser(user))
}
