package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/internal/config"
	"catalogadmin/internal/middleware"
	"catalogadmin/internal/models"
	"catalogadmin/internal/services"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, params common.ListParams) (*common.Page[*models.Product], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*common.Page[*models.Product]), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input *services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, input *services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(log.Discard())
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	users := &MockUserRepository{}
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(&models.User{ID: 1, Email: "admin@example.com", PasswordHash: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, common.NewNotFoundError("User"))

	auth := services.NewAuthService(users, config.AuthConfig{JWTSecret: "s", TokenTTL: time.Hour}, log.Discard())
	e := newEcho()
	h := NewAuthHandlers(auth)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", h.Me, middleware.JWT(auth))

	login := func(email, password string) *httptest.ResponseRecorder {
		body := `{"email":"` + email + `","password":"` + password + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	wrong := login("admin@example.com", "nope")
	unknown := login("ghost@example.com", "nope")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.Equal(t, "Invalid credentials", decode(t, wrong)["message"])

	ok := login("admin@example.com", "correct horse")
	require.Equal(t, http.StatusOK, ok.Code)
	body := decode(t, ok)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.NotContains(t, ok.Body.String(), "password")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "admin@example.com", user["email"])
	assert.Contains(t, user, "exp")
}

func TestProductCreate_MissingImageIs400(t *testing.T) {
	svc := &MockProductService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in *services.ProductInput) bool {
		return in.Image == nil && in.Name == "Shirt"
	})).Return(nil, common.NewValidationError("Product image is required"))

	e := newEcho()
	e.POST("/api/products", NewProductHandlers(svc).Create)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Shirt"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Product image is required", body["message"])
	svc.AssertExpectations(t)
}

func TestProductCreate_PassesUpload(t *testing.T) {
	svc := &MockProductService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in *services.ProductInput) bool {
		return in.Image != nil && in.Image.Filename == "shirt.png" && in.CollectionID == "4"
	})).Return(&models.Product{ID: 1, Name: "Shirt", ImageURL: "/uploads/products/1.png"}, nil)

	e := newEcho()
	e.POST("/api/products", NewProductHandlers(svc).Create)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Shirt"))
	require.NoError(t, w.WriteField("collection_id", "4"))
	part, err := w.CreateFormFile("image", "shirt.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/uploads/products/1.png", body["data"].(map[string]any)["image_url"])
	svc.AssertExpectations(t)
}

func TestProductList_PaginationEnvelope(t *testing.T) {
	svc := &MockProductService{}
	params := common.ListParams{Page: 2, Limit: 5, Search: "linen"}
	svc.On("List", mock.Anything, params).
		Return(common.NewPage([]*models.Product{{ID: 6}}, 12, params), nil)

	e := newEcho()
	e.GET("/api/products", NewProductHandlers(svc).List)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=5&search=linen", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	pagination := decode(t, rec)["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
	assert.Equal(t, float64(12), pagination["total"])
	assert.Equal(t, float64(3), pagination["totalPages"])
}

func TestProductGet_NotFoundAndBadID(t *testing.T) {
	svc := &MockProductService{}
	svc.On("GetByID", mock.Anything, int64(9)).Return(nil, common.NewNotFoundError("Product"))

	e := newEcho()
	e.GET("/api/products/:id", NewProductHandlers(svc).Get)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["message"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadsServe(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store, err := storage.NewLocalStoreFs(fsys)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "gallery/1-1.png", []byte("png-data"), 0o644))

	e := newEcho()
	e.GET("/uploads/*", NewUploadHandlers(store).Serve)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/gallery/1-1.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-data", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/gallery/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
