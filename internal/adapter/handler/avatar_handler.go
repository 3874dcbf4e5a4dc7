package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-directory/internal/adapter/handler/dto/response"
	"user-directory/internal/domain"
	"user-directory/internal/pkg/httputil"
	"user-directory/internal/usecase/avatar"
)

const maxAvatarSize = 5 << 20 // 5MB

type AvatarHandler struct {
	avatarSvc AvatarService
}

func NewAvatarHandler(avatarSvc AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarSvc: avatarSvc}
}

// Upload godoc
//
//	@Summary	Upload the authenticated user's avatar
//	@Tags		users
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int		true	"User ID"
//	@Param		avatar	formData	file	true	"Avatar image (jpeg or png)"
//	@Success	200		{object}	response.UserResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	403		{object}	httputil.ErrorResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Router		/users/{id}/avatar [put]
func (h *AvatarHandler) Upload(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httputil.GetUserID(c) != id {
		httputil.Error(c, http.StatusForbidden, "cannot modify another user's avatar")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isAllowedImageType(contentType) {
		httputil.Error(c, http.StatusBadRequest, "only jpeg and png images are allowed")
		return
	}

	u, err := h.avatarSvc.Upload(c.Request.Context(), avatar.UploadInput{
		UserID:      id,
		File:        file,
		Filename:    header.Filename,
		ContentType: contentType,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(c, http.StatusNotFound, "user not found")
			return
		}
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

func isAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
		return true
	default:
		return false
	}
}
