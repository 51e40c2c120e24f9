package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"guestlist/internal/domain"
	"guestlist/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")

	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

type UserDBLayer interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service is the identity provider seam: it turns credentials into bearer
// tokens and back into user ids. Everything past this package only ever sees
// a resolved user id.
type Service struct {
	DB       UserDBLayer
	Issuer   *TokenIssuer
	Denylist *Denylist
}

func NewService(db UserDBLayer, issuer *TokenIssuer, denylist *Denylist) *Service {
	return &Service{DB: db, Issuer: issuer, Denylist: denylist}
}

// Register creates an account and returns a fresh token for it.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", domain.Validationf("wrong email format")
	}
	if len(password) < 6 {
		return "", domain.Validationf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		RegisteredOn: time.Now().UTC(),
	}
	if err := s.DB.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return s.Issuer.Issue(user.ID)
}

// Login verifies credentials and issues a token. A missing account and a bad
// password are reported identically.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.DB.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.Issuer.Issue(user.ID)
}

// Logout denies the token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, token string, ttl time.Duration) error {
	if s.Denylist == nil {
		return nil
	}
	return s.Denylist.Deny(ctx, token, ttl)
}
