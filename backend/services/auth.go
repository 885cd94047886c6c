package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/repositories"
	"tracker/backend/storage"
	"tracker/backend/utils"
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	CareerGoal string
}

type AuthService struct {
	users  *repositories.UserRepository
	cfg    *config.Config
	logger *zap.Logger
	emails *keyedMutex[string]
	now    func() time.Time
}

// Register creates the account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := repositories.NormalizeEmail(in.Email)
	unlock := s.emails.Lock(email)
	defer unlock()

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.NextID(ctx)
	if err != nil {
		return nil, "", err
	}

	careerGoal := strings.TrimSpace(in.CareerGoal)
	if careerGoal == "" {
		careerGoal = models.DefaultCareerGoal
	}
	user := &models.User{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		CareerGoal:   careerGoal,
		JoinedDate:   s.now().UTC(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, "", fmt.Errorf("save user: %w", err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Email, s.cfg)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user_registered", zap.Uint("user_id", user.ID))
	return user, token, nil
}

// Login verifies the password and issues a token. Unknown emails and wrong
// passwords both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login_rejected", zap.Uint("user_id", user.ID))
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Email, s.cfg)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes name and career goal; empty values leave the field as is.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, name, careerGoal string) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if careerGoal = strings.TrimSpace(careerGoal); careerGoal != "" {
		user.CareerGoal = careerGoal
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
