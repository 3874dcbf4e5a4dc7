package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user-directory/internal/adapter/handler/dto/request"
	"user-directory/internal/adapter/handler/dto/response"
	"user-directory/internal/domain"
	"user-directory/internal/pkg/httputil"
	"user-directory/internal/usecase/user"
)

type UserHandler struct {
	userSvc UserService
}

func NewUserHandler(userSvc UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create godoc
//
//	@Summary		Create a new user
//	@Description	Register a user account; the email must not be taken
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.CreateUserRequest	true	"User data"
//	@Success		201		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		409		{object}	httputil.ErrorResponse	"Email already registered"
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			httputil.Error(c, http.StatusConflict, "email already registered")
			return
		}
		httputil.InternalError(c)
		return
	}

	location := fmt.Sprintf("/api/v1/users/%d", u.ID)
	httputil.Created(c, location, response.UserFromEntity(u))
}

// Get godoc
//
//	@Summary	Get user by id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	response.UserResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.userSvc.GetByID(c.Request.Context(), id)
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

// GetByEmail godoc
//
//	@Summary	Get user by email
//	@Tags		users
//	@Produce	json
//	@Param		email	path		string	true	"Email address"
//	@Success	200		{object}	response.UserResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Router		/users/email/{email} [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	u, err := h.userSvc.GetByEmail(c.Request.Context(), c.Param("email"))
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

// List godoc
//
//	@Summary	List active users
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	response.UserResponse
//	@Router		/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.ListAll(c.Request.Context())
	if err != nil {
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.UsersFromEntities(users))
}

// Search godoc
//
//	@Summary	Search active users by name fragment
//	@Tags		users
//	@Produce	json
//	@Param		name	query	string	true	"Name fragment (case-insensitive)"
//	@Success	200		{array}	response.UserResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Router		/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var req request.SearchUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	users, err := h.userSvc.SearchByName(c.Request.Context(), req.Name)
	if err != nil {
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.UsersFromEntities(users))
}

// Update godoc
//
//	@Summary	Partially update a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"User ID"
//	@Param		request	body		request.UpdateUserRequest	true	"Fields to update"
//	@Success	200		{object}	response.UserResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Failure	409		{object}	httputil.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), id, user.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			httputil.Error(c, http.StatusConflict, "email already registered")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Delete godoc
//
//	@Summary		Deactivate a user (soft delete)
//	@Description	The record is flagged inactive, never removed
//	@Tags			users
//	@Param			id	path	int	true	"User ID"
//	@Success		204	"No content"
//	@Failure		404	{object}	httputil.ErrorResponse
//	@Router			/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(c, http.StatusNotFound, "user not found")
			return
		}
		httputil.InternalError(c)
		return
	}

	httputil.NoContent(c)
}

// Reactivate godoc
//
//	@Summary	Reactivate a previously deactivated user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	response.UserResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Failure	500	{object}	httputil.ErrorResponse	"User already active"
//	@Router		/users/{id}/reactivate [patch]
func (h *UserHandler) Reactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.userSvc.Reactivate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(c, http.StatusNotFound, "user not found")
			return
		}
		// ErrUserAlreadyActive has no dedicated mapping and falls through
		// to a generic server error.
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// EmailExists godoc
//
//	@Summary	Check whether an email is registered
//	@Tags		users
//	@Produce	json
//	@Param		email	path		string	true	"Email address"
//	@Success	200		{object}	response.ExistsResponse
//	@Router		/users/email-exists/{email} [get]
func (h *UserHandler) EmailExists(c *gin.Context) {
	exists, err := h.userSvc.EmailExists(c.Request.Context(), c.Param("email"))
	if err != nil {
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.ExistsResponse{Exists: exists})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.Error(c, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
