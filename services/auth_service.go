package services

import (
	"errors"
	"time"

	"abstract-portal/config"
	"abstract-portal/models"
	"abstract-portal/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	AdminLogin(req models.AdminLoginRequest) (*models.AdminAuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

type tokenClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	existingUser, err := s.userRepo.GetByEmail(req.Email)
	if err == nil && existingUser != nil && existingUser.ID != 0 {
		return nil, models.ErrorConflict{Message: "User already exists"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          req.Email,
		Password:       string(hashedPassword),
		FullName:       req.FullName,
		Institution:    req.Institution,
		Phone:          req.Phone,
		RegistrationID: req.RegistrationID,
		Role:           models.RoleDelegate,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// AdminLogin checks the env-configured admin credentials and issues a
// short-lived role-scoped token. Admin identity is configuration, not a
// users row.
func (s *authService) AdminLogin(req models.AdminLoginRequest) (*models.AdminAuthResponse, error) {
	if config.AdminEmail == "" || config.AdminPasswordHash == "" {
		return nil, models.ErrorUnauthorized{Message: "Admin login is not configured"}
	}

	passwordOk := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(req.Password)) == nil
	if req.Email != config.AdminEmail || !passwordOk {
		return nil, models.ErrorUnauthorized{Message: "Invalid credentials"}
	}

	claims := &tokenClaims{
		Email: req.Email,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AdminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.AdminJWTSecret)
	if err != nil {
		return nil, err
	}

	return &models.AdminAuthResponse{
		Token: token,
		Email: req.Email,
		Role:  "admin",
	}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "User not found"}
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := &tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
}
