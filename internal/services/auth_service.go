package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/doc-studio/engine/internal/models"
	"github.com/doc-studio/engine/internal/repository"
	appErr "github.com/doc-studio/engine/pkg/errors"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{users: users, hmacSecret: secret, tokenTTL: tokenTTL}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErr.New(appErr.CodeInvalid, "email already registered")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(ph),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		return "", nil, appErr.New(appErr.CodeInvalid, "incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeInvalid, "incorrect email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, &user, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.users.GetByID(ctx, userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
