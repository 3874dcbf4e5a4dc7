package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"user-directory/internal/adapter/handler"
	"user-directory/internal/domain"
	"user-directory/internal/domain/entity"
	"user-directory/internal/mocks"
	"user-directory/internal/usecase/user"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newUserHandler(t *testing.T) (*handler.UserHandler, *mocks.MockUserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	userSvc := mocks.NewMockUserService(ctrl)
	return handler.NewUserHandler(userSvc), userSvc
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("creates user successfully", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.POST("/users", h.Create)

		created := &entity.User{
			ID:        1,
			Name:      "Joe",
			Email:     "joe@x.com",
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}
		userSvc.EXPECT().
			Create(gomock.Any(), user.CreateInput{Name: "Joe", Email: "joe@x.com", Password: "12345678"}).
			Return(created, nil)

		body := `{"name":"Joe","email":"joe@x.com","password":"12345678"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/v1/users/1", w.Header().Get("Location"))

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, float64(1), resp["id"])
		assert.Equal(t, "Joe", resp["name"])
		assert.Equal(t, true, resp["active"])
		assert.Nil(t, resp["updated_at"])
		assert.NotContains(t, resp, "password")
		assert.NotContains(t, resp, "password_hash")
	})

	t.Run("returns conflict for a taken email", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.POST("/users", h.Create)

		userSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmailAlreadyExists)

		body := `{"name":"Joe","email":"taken@x.com","password":"12345678"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "email already registered", resp["message"])
		assert.Equal(t, float64(http.StatusConflict), resp["status"])
	})

	t.Run("rejects an invalid payload with field errors", func(t *testing.T) {
		h, _ := newUserHandler(t)
		router := setupRouter()
		router.POST("/users", h.Create)

		body := `{"name":"J","email":"not-an-email","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "name")
		assert.Contains(t, resp.Errors, "email")
		assert.Contains(t, resp.Errors, "password")
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/:id", h.Get)

		userSvc.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&entity.User{
			ID: 1, Name: "Joe", Email: "joe@x.com", Active: true, CreatedAt: time.Now().UTC(),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "joe@x.com", resp["email"])
	})

	t.Run("returns 404 for an unknown or inactive user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/:id", h.Get)

		userSvc.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/users/9", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		h, _ := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/:id", h.Get)

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_GetByEmail(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/email/:email", h.GetByEmail)

		userSvc.EXPECT().GetByEmail(gomock.Any(), "joe@x.com").Return(&entity.User{
			ID: 1, Email: "joe@x.com", Active: true,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users/email/joe@x.com", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 404 when unknown", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/email/:email", h.GetByEmail)

		userSvc.EXPECT().GetByEmail(gomock.Any(), "nobody@x.com").Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/users/email/nobody@x.com", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	t.Run("returns a flat array", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users", h.List)

		userSvc.EXPECT().ListAll(gomock.Any()).Return([]entity.User{
			{ID: 1, Name: "Joe", Active: true},
			{ID: 2, Name: "Joan", Active: true},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("empty store yields an empty array", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users", h.List)

		userSvc.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestUserHandler_Search(t *testing.T) {
	t.Run("searches by name fragment", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/search", h.Search)

		userSvc.EXPECT().SearchByName(gomock.Any(), "jo").Return([]entity.User{
			{ID: 1, Name: "Joe", Active: true},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users/search?name=jo", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("requires the name parameter", func(t *testing.T) {
		h, _ := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/search", h.Search)

		req := httptest.NewRequest(http.MethodGet, "/users/search", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("updates the provided fields", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PUT("/users/:id", h.Update)

		name := "New"
		updatedAt := time.Now().UTC()
		userSvc.EXPECT().
			Update(gomock.Any(), int64(1), user.UpdateInput{Name: &name}).
			Return(&entity.User{ID: 1, Name: "New", Email: "joe@x.com", Active: true, UpdatedAt: &updatedAt}, nil)

		body := `{"name":"New"}`
		req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "New", resp["name"])
		assert.NotNil(t, resp["updated_at"])
	})

	t.Run("returns conflict when the new email is taken", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PUT("/users/:id", h.Update)

		userSvc.EXPECT().
			Update(gomock.Any(), int64(1), gomock.Any()).
			Return(nil, domain.ErrEmailAlreadyExists)

		body := `{"email":"taken@x.com"}`
		req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns 404 for an inactive user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PUT("/users/:id", h.Update)

		userSvc.EXPECT().
			Update(gomock.Any(), int64(9), gomock.Any()).
			Return(nil, domain.ErrUserNotFound)

		body := `{"name":"New"}`
		req := httptest.NewRequest(http.MethodPut, "/users/9", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("deactivates and returns no content", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.DELETE("/users/:id", h.Delete)

		userSvc.EXPECT().Deactivate(gomock.Any(), int64(1)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("returns 404 when already inactive", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.DELETE("/users/:id", h.Delete)

		userSvc.EXPECT().Deactivate(gomock.Any(), int64(1)).Return(domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Reactivate(t *testing.T) {
	t.Run("restores an inactive user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PATCH("/users/:id/reactivate", h.Reactivate)

		updatedAt := time.Now().UTC()
		userSvc.EXPECT().Reactivate(gomock.Any(), int64(1)).Return(&entity.User{
			ID: 1, Name: "Joe", Active: true, UpdatedAt: &updatedAt,
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/users/1/reactivate", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["active"])
	})

	t.Run("already active surfaces as a server error", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PATCH("/users/:id/reactivate", h.Reactivate)

		userSvc.EXPECT().Reactivate(gomock.Any(), int64(1)).Return(nil, domain.ErrUserAlreadyActive)

		req := httptest.NewRequest(http.MethodPatch, "/users/1/reactivate", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("returns 404 for an unknown user", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.PATCH("/users/:id/reactivate", h.Reactivate)

		userSvc.EXPECT().Reactivate(gomock.Any(), int64(9)).Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/users/9/reactivate", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_EmailExists(t *testing.T) {
	t.Run("reports existence", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/email-exists/:email", h.EmailExists)

		userSvc.EXPECT().EmailExists(gomock.Any(), "joe@x.com").Return(true, nil)

		req := httptest.NewRequest(http.MethodGet, "/users/email-exists/joe@x.com", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"exists":true}`, w.Body.String())
	})

	t.Run("store failures surface as server errors", func(t *testing.T) {
		h, userSvc := newUserHandler(t)
		router := setupRouter()
		router.GET("/users/email-exists/:email", h.EmailExists)

		userSvc.EXPECT().EmailExists(gomock.Any(), "joe@x.com").Return(false, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/users/email-exists/joe@x.com", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
