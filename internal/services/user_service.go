package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"stitch-backend/internal/auth"
	"stitch-backend/internal/cache"
	"stitch-backend/internal/models"
	"stitch-backend/internal/repositories"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService struct {
	UserRepo   *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		JWTManager: jwtManager,
	}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(req.Email) {
		return nil, errors.New("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	// Admins are provisioned manually, not via signup.
	role := req.Role
	if role != models.RoleBuyer && role != models.RoleSupplier {
		role = models.RoleBuyer
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Company:      req.Company,
		Phone:        req.Phone,
		Role:         role,
		Country:      req.Country,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, errors.New("failed to create account: " + err.Error())
	}
	return user, nil
}

// Login verifies credentials and issues a JWT. Admins with 2FA enabled get a
// temp token instead; the session token is issued after TOTP verification.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Redis fast path skips bcrypt for recently verified credentials.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || int(cachedID) != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, errors.New("invalid email or password")
		}
		cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	}

	if !user.IsActive {
		return nil, errors.New("account suspended")
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{TOTPRequired: true, TempToken: tempToken}, nil
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.UserRepo.TouchLastLogin(ctx, user.ID)
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.UserRepo.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.UserRepo.List(ctx)
}

func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	return s.UserRepo.SetActive(ctx, id, active)
}
