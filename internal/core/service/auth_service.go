package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
	"github.com/shiftline/staff-scheduler/internal/core/token"
)

// dummyHash is compared against when login hits an unknown email, so the
// unknown-email and wrong-password paths cost the same bcrypt work.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	return h
}()

// AuthService implements registration, login and identity resolution over
// the credential store. Sessions are stateless: the only artifact of a
// successful login is the signed token.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
	audit  ports.AuditSink
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, audit ports.AuditSink) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, audit: audit}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	// bcrypt salts per call, so identical passwords never share a hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.issuer.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEntry{ActorID: created.ID, Action: domain.AuditRegister})
	return tkn, created.Sanitized(), nil
}

// Login deliberately collapses "no such email" and "wrong password" into a
// single ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEntry{ActorID: user.ID, Action: domain.AuditLogin})
	return tkn, user.Sanitized(), nil
}

func (s *AuthService) WhoAmI(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out, nil
}

func (s *AuthService) record(entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.At = time.Now().UTC()
	s.audit.Enqueue(entry)
}
