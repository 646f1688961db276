package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/auth"
)

const minPasswordLen = 6

type Service struct {
	repo   Repository
	tokens auth.Issuer
}

func NewService(repo Repository, tokens auth.Issuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Signup
func (s *Service) Signup(ctx context.Context, in SignupRequest) (*Profile, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation("", "name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validation("password", "password must be at least 6 characters")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Persistence("hash password", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, apperr.Conflict("user already exists")
		}
		return nil, apperr.Persistence("create user", err)
	}
	p := u.Profile()
	return &p, nil
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", apperr.Validation("", "email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperr.Authentication("invalid credentials")
		}
		return "", apperr.Persistence("find user", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", apperr.Authentication("invalid credentials")
	}
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", apperr.Persistence("issue token", err)
	}
	return tok, nil
}

// Profile
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, apperr.Authentication("not authenticated")
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Persistence("get user", err)
	}
	p := u.Profile()
	return &p, nil
}

// UpdateProfile applies a partial update; nil fields keep their value.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileRequest) (*Profile, error) {
	if userID == "" {
		return nil, apperr.Authentication("not authenticated")
	}
	upd := ProfileUpdate{
		Name:    trimmed(in.Name),
		Contact: trimmed(in.Contact),
		Address: trimmed(in.Address),
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, apperr.Validation("name", "name cannot be empty")
	}
	u, err := s.repo.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Persistence("update user", err)
	}
	p := u.Profile()
	return &p, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
