package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-directory/internal/adapter/handler/dto/request"
	"user-directory/internal/adapter/handler/dto/response"
	"user-directory/internal/domain"
	"user-directory/internal/pkg/httputil"
	"user-directory/internal/usecase/auth"
)

type AuthHandler struct {
	authSvc AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login godoc
//
//	@Summary		Login
//	@Description	Verify credentials and return an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	response.LoginResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		401		{object}	httputil.ErrorResponse	"Invalid credentials"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	result, u, err := h.authSvc.Login(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.LoginResponse{
		User:        response.UserFromEntity(u),
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
	})
}
