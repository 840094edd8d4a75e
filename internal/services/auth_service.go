package services

import (
	"context"
	"fmt"
	"time"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	logger     *zap.SugaredLogger
}

// NewAuthService creates a new AuthService. A non-positive ttl falls back to
// 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration, logger *zap.SugaredLogger) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: ttl,
		logger:     logger,
	}
}

// RegisterUser hashes the user's password and saves them. The password field
// is replaced by the hash.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	// Check if username or email already exists
	if existingUser, err := s.userRepo.GetByUsername(ctx, user.Username); err == nil && existingUser != nil {
		return apperror.NewDuplicateError(fmt.Sprintf("username '%s' already taken", user.Username), nil)
	}
	if existingUser, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existingUser != nil {
		return apperror.NewDuplicateError(fmt.Sprintf("email '%s' already registered", user.Email), nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}
	user.Password = string(hashedPassword)

	// The repository re-checks uniqueness atomically.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Infow("Registered user", "userID", user.ID, "username", user.Username)
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", apperror.NewAuthError("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.NewAuthError("invalid credentials", nil)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.NewInternalError("failed to generate token", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		s.logger.Debugw("Token validation error", "error", err)
		return nil, apperror.NewAuthError("invalid token", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperror.NewAuthError("invalid token", nil)
}

// UserIDFromClaims extracts the integer user id. JSON decoding turns every
// number into a float64, so that is the shape accepted here.
func UserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		if v < 1 || v != float64(int64(v)) {
			break
		}
		return int64(v), nil
	case int64:
		if v >= 1 {
			return v, nil
		}
	}
	return 0, apperror.NewAuthError("invalid token", fmt.Errorf("bad user_id claim %v", claims["user_id"]))
}

// GetUser returns the user with the given id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
