package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/service"
)

type stubAuthService struct {
	claims *service.Claims
}

func (s *stubAuthService) SendCode(context.Context, string, string) (*models.User, error) {
	panic("not used")
}

func (s *stubAuthService) IssueToken(context.Context, string, string) (string, error) {
	panic("not used")
}

func (s *stubAuthService) ValidateToken(token string) (*service.Claims, error) {
	if token == "good" && s.claims != nil {
		return s.claims, nil
	}
	return nil, service.ErrInvalidToken
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) Create(context.Context, *models.User) error { panic("not used") }
func (s *stubUserRepo) Update(context.Context, *models.User) error { panic("not used") }
func (s *stubUserRepo) Delete(context.Context, string) error       { panic("not used") }

func (s *stubUserRepo) List(context.Context, string, int, int) ([]models.User, int64, error) {
	panic("not used")
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByUsername(context.Context, string) (*models.User, error) {
	panic("not used")
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	panic("not used")
}

func authTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := &stubAuthService{}
	repo := &stubUserRepo{users: map[string]*models.User{}}
	if user != nil {
		auth.claims = &service.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}
		repo.users[user.ID] = user
	}

	r := gin.New()
	protected := r.Group("/", AuthMiddleware(auth, repo))
	protected.GET("/whoami", func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	protected.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := authTestRouter(&models.User{ID: "u1", Username: "alice", Role: models.RoleUser})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "good").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Basic good").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer bad").Code)
}

func TestAuthMiddlewareAccepts(t *testing.T) {
	r := authTestRouter(&models.User{ID: "u1", Username: "alice", Role: models.RoleUser})

	w := doRequest(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	// valid token but the account is gone
	auth := &stubAuthService{claims: &service.Claims{UserID: "ghost"}}
	repo := &stubUserRepo{users: map[string]*models.User{}}

	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/whoami", AuthMiddleware(auth, repo), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want int
	}{
		{"plain user", models.User{ID: "u1", Role: models.RoleUser}, http.StatusForbidden},
		{"moderator", models.User{ID: "u2", Role: models.RoleModerator}, http.StatusForbidden},
		{"admin", models.User{ID: "u3", Role: models.RoleAdmin}, http.StatusNoContent},
		{"superuser", models.User{ID: "u4", Role: models.RoleUser, Superuser: true}, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authTestRouter(&tt.user)
			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Authorization", "Bearer good")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
