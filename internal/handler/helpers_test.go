package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/middleware"
	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/internal/service"
	"github.com/mnadhif/student-records-api/pkg/config"
)

// fakeStudentRepo is an in-memory studentRepository that counts every call
// so tests can prove the session gate short-circuits before storage.
type fakeStudentRepo struct {
	students map[string]models.Student
	order    []string
	calls    int
	writes   int
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[string]models.Student)}
	for _, s := range students {
		repo.students[s.ID] = s
		repo.order = append(repo.order, s.ID)
	}
	return repo
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	f.calls++
	out := make([]models.Student, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.students[id])
	}
	return out, nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	f.calls++
	if s, ok := f.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	f.calls++
	f.writes++
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	f.students[student.ID] = *student
	f.order = append(f.order, student.ID)
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	f.calls++
	f.writes++
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id string) (int64, error) {
	f.calls++
	if _, ok := f.students[id]; !ok {
		return 0, nil
	}
	f.writes++
	delete(f.students, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// fakeUserRepo backs the auth service in handler tests.
type fakeUserRepo struct {
	byEmail map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: make(map[string]models.User)}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.byEmail[user.Email] = *user
	return nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:        "test_secret",
		Lifetime:      720 * time.Hour,
		RefreshWindow: 24 * time.Hour,
		CookieName:    "session_token",
	}
}

// newTestRouter mirrors the route registration in cmd/api.
func newTestRouter(t *testing.T, studentRepo *fakeStudentRepo, userRepo *fakeUserRepo) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessionCfg := testSessionConfig()
	authSvc := service.NewAuthService(userRepo, nil, zap.NewNop(), service.AuthConfig{
		Secret:        sessionCfg.Secret,
		Lifetime:      sessionCfg.Lifetime,
		RefreshWindow: sessionCfg.RefreshWindow,
	})
	studentSvc := service.NewStudentService(studentRepo, nil, zap.NewNop())
	exportSvc := service.NewExportService(studentRepo, zap.NewNop())

	authHandler := NewAuthHandler(authSvc, sessionCfg)
	studentHandler := NewStudentHandler(studentSvc, exportSvc)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signout", authHandler.Signout)
	auth.GET("/me", middleware.RequireSession(authSvc, sessionCfg, zap.NewNop()), authHandler.Me)

	students := api.Group("/students", middleware.RequireSession(authSvc, sessionCfg, zap.NewNop()))
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.PUT("", studentHandler.Replace)
	students.GET("/export", studentHandler.Export)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Delete)

	return r, authSvc
}

func sessionCookie(t *testing.T, authSvc *service.AuthService) *http.Cookie {
	t.Helper()
	token, _, err := authSvc.IssueSession(&models.User{ID: "u1", Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)
	return &http.Cookie{Name: "session_token", Value: token}
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
