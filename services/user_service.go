package services

import (
	"context"
	"strings"

	"pos-service/models"
	"pos-service/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles staff sign-in and account administration.
type UserService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError)
	CreateUser(ctx context.Context, actor models.Actor, req *models.CreateUserRequest) (*models.User, *ServiceError)
	ListUsers(ctx context.Context, actor models.Actor) ([]models.User, *ServiceError)
	DeleteUser(ctx context.Context, actor models.Actor, id uint) *ServiceError
	EnsureAdmin(ctx context.Context, username, password string) error
}

type userServiceImpl struct {
	store  repository.Store
	tokens *TokenService
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store, tokens *TokenService, logger *zap.Logger) UserService {
	return &userServiceImpl{store: store, tokens: tokens, logger: logger}
}

func (s *userServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	user, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if isNotFound(err) {
			return nil, unauthenticated("Invalid credentials")
		}
		return nil, unexpected(err)
	}
	if !user.IsActive {
		return nil, unauthenticated("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, unauthenticated("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, unexpected(err)
	}

	resp := &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		RoleID:    user.RoleID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	s.logger.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("role", user.RoleID.String()))
	return resp, nil
}

// CreateUser adds a staff account. Admins may create any role; Managers may
// only create Waiters and Cashiers.
func (s *userServiceImpl) CreateUser(ctx context.Context, actor models.Actor, req *models.CreateUserRequest) (*models.User, *ServiceError) {
	if svcErr := Authorize(actor, OpCreateUser); svcErr != nil {
		return nil, svcErr
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.RoleID == 0 {
		return nil, invalidInput("Username, password and role_id are required")
	}
	if !req.RoleID.Valid() {
		return nil, invalidInput("Invalid role")
	}
	if actor.Role == models.RoleManager && req.RoleID != models.RoleWaiter && req.RoleID != models.RoleCashier {
		return nil, permissionDenied("Manager can only create Waiter and Cashier users")
	}
	if len(req.Password) < 6 {
		return nil, invalidInput("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, unexpected(err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		IsActive:     true,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		user.Email = &email
	}
	if actor.UserID != 0 {
		createdBy := actor.UserID
		user.CreatedByID = &createdBy
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKey("Username or email already exists")
		}
		s.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.RoleID.String()),
		zap.Uint("created_by", actor.UserID))
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, actor models.Actor) ([]models.User, *ServiceError) {
	if svcErr := Authorize(actor, OpListUsers); svcErr != nil {
		return nil, svcErr
	}
	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	return users, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, actor models.Actor, id uint) *ServiceError {
	if svcErr := Authorize(actor, OpDeleteUser); svcErr != nil {
		return svcErr
	}
	if id == actor.UserID {
		return invalidInput("Cannot delete your own account")
	}
	if err := s.store.Users().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("User not found")
		}
		return unexpected(err)
	}
	s.logger.Info("User deleted", zap.Uint("user_id", id), zap.Uint("deleted_by", actor.UserID))
	return nil
}

// EnsureAdmin creates the bootstrap Admin account when it does not exist.
func (s *userServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.store.Users().FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.store.Users().Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Bootstrap admin created", zap.String("username", username))
	return nil
}
