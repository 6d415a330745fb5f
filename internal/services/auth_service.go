package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/auth"
	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenManager
	publisher events.EventPublisher
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, tokens *auth.TokenManager, publisher events.EventPublisher) AuthService {
	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		tokens:    tokens,
		publisher: publisher,
	}
}

// Register creates an account. Teachers start unvalidated and must be
// approved by an admin before they can publish anything.
func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	role := models.UserRole(req.Role)
	if role == models.RoleAdmin {
		// Admin accounts are seeded, never self-registered.
		return nil, NewBusinessRuleError("admin_registration", "admin accounts cannot be self-registered")
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:         req.Email,
		Password:      hash,
		Name:          req.Name,
		Role:          role,
		BranchID:      req.BranchID,
		LevelID:       req.LevelID,
		Filiere:       req.Filiere,
		Establishment: req.Establishment,
		IsValidated:   role != models.RoleTeacher,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrEmailTaken
			}
			return err
		}
		return txRepo.Notification().CreateSettings(ctx, nil, models.DefaultNotificationSettings(user.ID))
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]string{
		"user_id": user.ID,
		"role":    string(user.Role),
	})); err != nil {
		s.logger.Warn("failed to publish registration event", "error", err, "user_id", user.ID)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session token. The same error
// covers unknown email and wrong password.
func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
