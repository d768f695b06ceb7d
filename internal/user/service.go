package user

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/user"
	"github.com/google/uuid"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type Service struct {
	users     UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewService(users UserRepository, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// Register creates an installer account and its profile row in a single
// repository write, so every signed-in subject has a profile from the first
// request and a failed registration leaves no account behind.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*user.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	p := &profile.Profile{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		FullName:  fullName,
		Role:      "installer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.CreateUserWithProfile(ctx, u, p); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCreds
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   u.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}
	return signed, nil
}
