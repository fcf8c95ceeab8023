package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"exercise-api/internal/domain"
	"exercise-api/internal/repository"
	"exercise-api/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUserNotFound         = errors.New("user not found")
)

// Identity is the caller resolved from a verified token. It lives for one
// request.
type Identity struct {
	UserID   int64
	Username string
}

// TokenPair bundles a short-lived access token with a longer-lived refresh
// token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, TokenPair, error)
	Login(ctx context.Context, username, password string) (*domain.User, TokenPair, error)
	// Refresh verifies a refresh token and issues a fresh pair. Returns
	// ErrInvalidToken on a bad token and ErrUserNotFound when the subject
	// user no longer exists.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// VerifyToken validates a bearer credential and extracts the caller
	// identity. Accepts both a raw token and the "Bearer <token>" form.
	VerifyToken(credential string) (Identity, error)
}

// --- Service Implementation ---

type authService struct {
	userRepo   repository.UserRepository
	logger     logger.Logger
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, log logger.Logger, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:   userRepo,
		logger:     log,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, TokenPair, error) {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, TokenPair{}, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, TokenPair{}, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, TokenPair{}, ErrHashingFailed
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hashed,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the race between the GetByUsername check
		// and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, TokenPair{}, ErrUsernameTaken
		}
		return nil, TokenPair{}, err
	}
	user.ID = userID

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, ErrTokenGeneration
	}

	s.logger.Info("user registered", map[string]interface{}{"userId": user.ID, "username": user.Username})
	user.PasswordHash = ""
	return user, tokens, nil
}

// Login handles user authentication and token issuance. An unknown username
// and a wrong password fail identically so usernames cannot be enumerated.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrAuthenticationFailed
		}
		return nil, TokenPair{}, err
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, TokenPair{}, ErrAuthenticationFailed
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	identity, err := s.VerifyToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, ErrTokenGeneration
	}
	return tokens, nil
}

// --- Password Helpers ---

// digestPassword condenses a password to a fixed-size input. bcrypt only
// consumes the first 72 bytes and rejects anything longer, while the register
// schema allows up to 100 characters; hashing through SHA-256 keeps the whole
// password significant.
func digestPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(digestPassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), digestPassword(password)) == nil
}

// --- JWT Helpers ---

// jwtClaims defines the structure of the token payload.
type jwtClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *authService) issueTokens(user *domain.User) (TokenPair, error) {
	access, err := s.signToken(user, s.accessTTL, "")
	if err != nil {
		return TokenPair{}, err
	}
	// Refresh tokens carry a UUID jti so individual tokens show up
	// distinguishably in logs.
	refresh, err := s.signToken(user, s.refreshTTL, uuid.NewString())
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(user *domain.User, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "exercise-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) VerifyToken(credential string) (Identity, error) {
	credential = strings.TrimSpace(credential)
	if after, found := strings.CutPrefix(credential, "Bearer "); found {
		credential = after
	}
	if credential == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
