package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"quickchat/config"
	"quickchat/internal/domain/user"
	"quickchat/internal/repository"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies stateless session tokens. Tokens are
// self-verifying HS256 JWTs; there is no server-side revocation list.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
	Bio      string
}

type AuthResult struct {
	User  user.User
	Token string
}

type SessionClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	if err := validateSignup(in); err != nil {
		return AuthResult{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, quickchat_errors.ErrConflict
	} else if !errors.Is(err, quickchat_errors.ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Bio:          in.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResult{}, err
	}

	token, err := s.newToken(newUser.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: *newUser, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, quickchat_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same error for unknown email and wrong password.
		if errors.Is(err, quickchat_errors.ErrNotFound) {
			return AuthResult{}, quickchat_errors.ErrUnauthorized
		}
		return AuthResult{}, err
	}

	if err := comparePassword(u.PasswordHash, password); err != nil {
		return AuthResult{}, quickchat_errors.ErrUnauthorized
	}

	token, err := s.newToken(u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u, Token: token}, nil
}

// ResolveToken verifies a session token and loads the user it is bound
// to. Every protected operation goes through here.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (user.User, error) {
	if tokenString == "" {
		return user.User{}, quickchat_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, quickchat_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return user.User{}, quickchat_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return user.User{}, quickchat_errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return user.User{}, quickchat_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, quickchat_errors.ErrNotFound) {
			return user.User{}, quickchat_errors.ErrUnauthorized
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *AuthService) newToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func validateSignup(in SignupInput) error {
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.Bio == "" {
		return quickchat_errors.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return quickchat_errors.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return quickchat_errors.ErrInvalidInput
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HTTPStatus maps the error taxonomy onto response status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, quickchat_errors.ErrInvalidInput), errors.Is(err, quickchat_errors.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, quickchat_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, quickchat_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quickchat_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, quickchat_errors.ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var currentUserKey ctxKey = "current_user"

// WithCurrentUser stashes the authenticated user on the request context.
func WithCurrentUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

func CurrentUserFromContext(ctx context.Context) (user.User, bool) {
	value := ctx.Value(currentUserKey)
	if value == nil {
		return user.User{}, false
	}
	u, ok := value.(user.User)
	return u, ok
}
