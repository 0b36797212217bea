package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Juliban27/DiningThrough/internal/auth"
	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	userRepo      repo.UserRepository
	authenticator *auth.Authenticator
	logger        *zap.SugaredLogger
}

func NewAuthService(
	userRepo repo.UserRepository,
	authenticator *auth.Authenticator,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		authenticator: authenticator,
		logger:        logger,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		role = domain.RoleCliente
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		Name:     name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", user.ID.Hex(), "role", user.Role)

	return user, nil
}

// Login verifies the credentials and returns a bearer token carrying the user
// id and role. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.authenticator.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}
