package user

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/user"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users       map[string]*user.User
	profiles    map[string]*profile.Profile
	errOnCreate error
	errOnFind   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:    make(map[string]*user.User),
		profiles: make(map[string]*profile.Profile),
	}
}

func (r *stubUserRepo) CreateUserWithProfile(ctx context.Context, u *user.User, p *profile.Profile) error {
	if r.errOnCreate != nil {
		return r.errOnCreate
	}
	if _, exists := r.users[u.Email]; exists {
		return ErrUserExists
	}
	r.users[u.Email] = u
	r.profiles[p.UserID] = p
	return nil
}

func (r *stubUserRepo) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.errOnFind != nil {
		return nil, r.errOnFind
	}
	u, ok := r.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func TestServiceRegister(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)

	t.Run("successful registration", func(t *testing.T) {
		u, err := svc.Register(context.Background(), "mary@example.com", "password123", "Mary Zulu")
		if err != nil {
			t.Fatal(err)
		}
		if u.Email != "mary@example.com" {
			t.Errorf("expected email 'mary@example.com', got '%s'", u.Email)
		}
		if u.ID == "" {
			t.Errorf("expected assigned ID, got empty string")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) != nil {
			t.Error("password hash does not match original password")
		}
	})

	t.Run("profile created with account", func(t *testing.T) {
		u := repo.users["mary@example.com"]
		p, ok := repo.profiles[u.ID]
		if !ok {
			t.Fatal("expected profile to be created on registration")
		}
		if p.FullName != "Mary Zulu" {
			t.Errorf("expected full name 'Mary Zulu', got %q", p.FullName)
		}
		if p.Role != "installer" {
			t.Errorf("expected role 'installer', got %q", p.Role)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "short@example.com", "short", "")
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "not-an-email", "password123", "")
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("user already exists", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "mary@example.com", "anotherpass", "")
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("expected ErrUserExists, got %v", err)
		}
	})

	t.Run("repo create returns error", func(t *testing.T) {
		repo := newStubUserRepo()
		repo.errOnCreate = errors.New("db error")
		repo.errOnFind = sql.ErrNoRows
		svc := NewService(repo, []byte("secret"), time.Hour)

		_, err := svc.Register(context.Background(), "err@example.com", "password123", "")
		if err == nil || err.Error() != "db error" {
			t.Errorf("expected db error, got %v", err)
		}
	})

	t.Run("failed registration leaves no account behind", func(t *testing.T) {
		repo := newStubUserRepo()
		repo.errOnCreate = errors.New("profile insert failed")
		repo.errOnFind = sql.ErrNoRows
		svc := NewService(repo, []byte("secret"), time.Hour)

		_, err := svc.Register(context.Background(), "jane@example.com", "password123", "Jane Phiri")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if len(repo.users) != 0 {
			t.Errorf("expected no user rows after failed registration, got %d", len(repo.users))
		}
		if len(repo.profiles) != 0 {
			t.Errorf("expected no profile rows after failed registration, got %d", len(repo.profiles))
		}
	})
}

func TestServiceAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)

	password := "password123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	repo.users["mary@example.com"] = &user.User{ID: "u-1", Email: "mary@example.com", PasswordHash: string(hash)}

	t.Run("successful authentication", func(t *testing.T) {
		token, err := svc.Authenticate(context.Background(), "mary@example.com", password)
		if err != nil {
			t.Fatal(err)
		}
		if token == "" {
			t.Error("expected non-empty token")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "password")
		if !errors.Is(err, ErrInvalidCreds) {
			t.Errorf("expected ErrInvalidCreds, got %v", err)
		}
	})

	t.Run("invalid password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "mary@example.com", "wrongpass")
		if !errors.Is(err, ErrInvalidCreds) {
			t.Errorf("expected ErrInvalidCreds, got %v", err)
		}
	})

	t.Run("authenticate returns valid JWT", func(t *testing.T) {
		token, err := svc.Authenticate(context.Background(), "mary@example.com", password)
		if err != nil {
			t.Fatal(err)
		}

		parsed, _, err := new(jwt.Parser).ParseUnverified(token, &jwt.RegisteredClaims{})
		if err != nil {
			t.Fatalf("failed to parse token: %v", err)
		}
		claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
		if !ok {
			t.Fatal("token claims have wrong type")
		}
		if claims.Subject != "mary@example.com" {
			t.Errorf("expected subject 'mary@example.com', got %q", claims.Subject)
		}
	})
}

func setupUserHandler() (*Handler, *stubUserRepo) {
	repo := newStubUserRepo()
	svc := NewService(repo, []byte("secret"), time.Hour)
	return NewHandler(svc), repo
}

func TestUserHandlerRegister(t *testing.T) {
	handler, _ := setupUserHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"Valid registration", `{"email":"test@example.com","password":"password123","full_name":"Test Installer"}`, http.StatusOK},
		{"Invalid JSON", `{"email":"test@example.com",password:"badjson"}`, http.StatusBadRequest},
		{"Password too short", `{"email":"test2@example.com","password":"short"}`, http.StatusBadRequest},
		{"Invalid email", `{"email":"nope","password":"password123"}`, http.StatusBadRequest},
		{"User already exists", `{"email":"test@example.com","password":"password123"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)
		res := rec.Result()
		defer res.Body.Close()

		if res.StatusCode != tt.wantStatus {
			t.Errorf("%s: got status %d, want %d", tt.name, res.StatusCode, tt.wantStatus)
		}
	}
}

func TestUserHandlerLogin(t *testing.T) {
	handler, repo := setupUserHandler()

	pass := "password123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	repo.users["test@example.com"] = &user.User{
		ID:           "u-1",
		Email:        "test@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"Valid login", `{"email":"test@example.com","password":"password123"}`, http.StatusOK},
		{"Invalid password", `{"email":"test@example.com","password":"wrongpass"}`, http.StatusUnauthorized},
		{"Invalid JSON", `{"email":"test@example.com",password:"badjson"}`, http.StatusBadRequest},
		{"User not found", `{"email":"nouser@example.com","password":"pass"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)
		res := rec.Result()
		defer res.Body.Close()

		if res.StatusCode != tt.wantStatus {
			t.Errorf("%s: got status %d, want %d", tt.name, res.StatusCode, tt.wantStatus)
		}
	}
}
