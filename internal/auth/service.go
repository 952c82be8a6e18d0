package auth

import (
	"context"
	"errors"
	"time"

	"github.com/shaswat2031/rungo/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return TokenResponse{}, errors.New("username, email, password required")
	}

	var existing int
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE email = $1 OR username = $2
	`, req.Email, req.Username)
	if err := row.Scan(&existing); err != nil {
		return TokenResponse{}, err
	}
	if existing > 0 {
		return TokenResponse{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return TokenResponse{}, err
	}

	user := User{
		UserID:   uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO users (user_id, username, email, password_hash, xp, level)
		VALUES ($1,$2,$3,$4,0,1)
	`, user.UserID, user.Username, user.Email, string(hash))
	if err != nil {
		return TokenResponse{}, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, COALESCE(username,''), email, password_hash
		FROM users WHERE email = $1
	`, req.Email)

	var user User
	var hash string
	if err := row.Scan(&user.UserID, &user.Username, &user.Email, &hash); err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Token: token, User: user}, nil
}

// Me loads the public identity for an authenticated user.
func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, COALESCE(username,''), COALESCE(email,'')
		FROM users WHERE user_id = $1
	`, userID)

	var user User
	if err := row.Scan(&user.UserID, &user.Username, &user.Email); err != nil {
		return User{}, err
	}
	return user, nil
}

// ValidateToken parses a signed token and returns its claims.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func (s *Service) signToken(user User) (string, error) {
	claims := Claims{
		UserID:   user.UserID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
