package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"qzone/internal/middleware"
	"qzone/internal/model"
	"qzone/internal/repository"
	"qzone/internal/service"
	"qzone/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
	err   error
}

func (r *memUsers) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[u.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	r.users[u.Username] = *u
	return nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[username]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUsers) FindByUsernameAndRole(ctx context.Context, username string, role model.Role) (*model.User, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil || u == nil || u.Role != role {
		return nil, err
	}
	return u, nil
}

func (r *memUsers) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.User
	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

type stubSectors struct {
	history []model.InfectionRecord
	err     error
}

func (s *stubSectors) Sectors() []string { return []string{"Boston QZ", "Jackson"} }

func (s *stubSectors) InfectionHistory(_ context.Context, _ string) ([]model.InfectionRecord, error) {
	return s.history, s.err
}

func (s *stubSectors) ResourceData(_ context.Context, _ string) (*model.SectorResources, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.SectorResources{Resource: &model.ResourceData{Sector: "Jackson", Food: 50}}, nil
}

func (s *stubSectors) SeedInfection(_ context.Context) (int64, error) { return 56, s.err }

func (s *stubSectors) SeedResources(_ context.Context) (string, error) {
	return "Seeded resource and activity data for 8 sectors", s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router  *gin.Engine
	users   *memUsers
	sectors *stubSectors
	metrics *middleware.Metrics
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "registration.html"), []byte("<h1>Register</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "style.css"), []byte("body{}"), 0o644))

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := &memUsers{users: map[string]model.User{}}
	sectors := &stubSectors{}
	metrics := middleware.NewMetrics()
	authSvc := service.NewAuthService(users, utils.NewPasswordHasher(bcrypt.MinCost))

	router := NewRouter(RouterDeps{
		Auth:    NewAuthHandler(authSvc, metrics, log),
		Sectors: NewSectorHandler(sectors, log),
		System:  NewSystemHandler(stubPinger{err: pingErr}, staticDir),
		Metrics: metrics,
		Log:     log,
	})
	return &testServer{router: router, users: users, sectors: sectors, metrics: metrics}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
