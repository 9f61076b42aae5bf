package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already registered")
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}

type UserService struct {
	repo   UserStore
	tokens *TokenIssuer
	log    *zap.Logger
}

func NewUserService(repo UserStore, tokens *TokenIssuer, log *zap.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, log: log}
}

func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) error {
	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return ErrUserExists
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:       primitive.NewObjectID(),
		Username: req.Username,
		Password: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}
	s.log.Info("user registered", zap.String("username", user.Username))
	return nil
}

// AuthenticateUser checks the credential and returns a signed token.
func (s *UserService) AuthenticateUser(ctx context.Context, cred Credential) (string, error) {
	user, err := s.repo.FindByUsername(ctx, cred.Username)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || !CheckPasswordHash(cred.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
