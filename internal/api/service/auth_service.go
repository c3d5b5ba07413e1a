package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/repository"
	"titlehub/internal/auth"
	"titlehub/internal/config"
	"titlehub/internal/mail"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SendCode gets or creates the user for the email/username pair,
	// stores a fresh confirmation code and mails it out.
	SendCode(ctx context.Context, email, username string) (*models.User, error)
	// IssueToken swaps a valid confirmation code for a bearer access token.
	IssueToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	codeStore repository.CodeStore
	mailer    mail.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeStore repository.CodeStore,
	mailer mail.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		codeStore: codeStore,
		mailer:    mailer,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.AccessTokenTTL,
		codeTTL:   cfg.ConfirmationCodeTTL,
	}
}

func (s *authService) SendCode(ctx context.Context, email, username string) (*models.User, error) {
	// The user create commits before the code reaches Redis or the mail
	// goes out. If either later step fails, the row stays behind and the
	// next request for the same pair reuses it with a fresh code, so the
	// flow is idempotent without a cross-store transaction.
	user, err := s.getOrCreateUser(ctx, email, username)
	if err != nil {
		return nil, err
	}

	code := auth.GenerateCode()
	hash, err := auth.HashCode(code)
	if err != nil {
		return nil, err
	}
	// A repeated request overwrites the previous code, so only the newest
	// one is ever valid.
	if err := s.codeStore.Set(ctx, user.ID, hash, s.codeTTL); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.mailer.Send(user.Email, "Confirmation email", body); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) getOrCreateUser(ctx context.Context, email, username string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if user.Username != username {
			return nil, ErrEmailInUse
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Email is unknown; the username must be free too.
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, email, code string) (string, error) {
	// An unknown email and a bad code produce the same generic failure so
	// the endpoint cannot be used to probe which addresses exist.
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	hash, err := s.codeStore.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.VerifyCode(hash, code); err != nil {
		return "", ErrInvalidCredentials
	}

	// single-use: the code dies with its first successful exchange
	if err := s.codeStore.Delete(ctx, user.ID); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
