package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sitterhub/infras/otel/mocks"
	"sitterhub/internal/domains/auth/model/dto"
	serviceMocks "sitterhub/internal/domains/auth/service/mocks"
	"sitterhub/internal/handlers/auth"
	"sitterhub/shared/constant"
	"sitterhub/shared/failure"
)

func newRouter(t *testing.T) (*serviceMocks.MockAuth, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockAuth(ctrl)

	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func post(ctx context.Context, router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestLogin(t *testing.T) {
	svc, router := newRouter(t)

	t.Run("ok", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "sam@example.com", Password: "secret"}).
			Return(dto.LoginResponse{User: dto.UserResponse{ID: "st-1", Role: constant.RoleSitter}}, nil)

		rec := post(context.Background(), router, "/auth/login", `{"email":"sam@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"st-1"`)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := post(context.Background(), router, "/auth/login", `{"email":"nope","password":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))

		rec := post(context.Background(), router, "/auth/login", `{"email":"sam@example.com","password":"guess"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	svc, router := newRouter(t)
	body := `{"current_password":"old-secret","new_password":"new-secret"}`

	t.Run("no session", func(t *testing.T) {
		rec := post(context.Background(), router, "/auth/change-password", body)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "st-1")
		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), "st-1").Return(nil)

		rec := post(ctx, router, "/auth/change-password", body)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
