package auth

import (
	"context"
	"errors"
	"time"

	"report-backend/orm"
	"report-backend/report"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountArchived    = errors.New("account is archived")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint64) (*orm.User, error)
	GetUserByEmail(ctx context.Context, email string) (*orm.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *orm.User) error
}

// Service authenticates callers and issues JWTs carrying the subject id
// and role. The resolved identity is handed to the core as explicit
// parameters, never read from ambient state.
type Service struct {
	store       UserStore
	secret      []byte
	tokenExpiry time.Duration
}

func NewService(store UserStore, secret string, tokenExpiry time.Duration) *Service {
	if tokenExpiry <= 0 {
		tokenExpiry = 24 * time.Hour
	}

	return &Service{
		store:       store,
		secret:      []byte(secret),
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a user with a bcrypt-hashed password. A taken email
// surfaces as a conflict.
func (s *Service) Register(
	ctx context.Context,
	name, email, password string,
) (*orm.User, string, error) {
	if email == "" || password == "" {
		return nil, "", &orm.ValidationError{Reason: "email and password are required"}
	}

	exists, err := s.store.UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", &orm.ConflictError{Conflict: "email " + email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &orm.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     orm.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	log.Info().Uint64("id", user.ID).Str("email", email).Msg("user registered")

	return user, token, nil
}

// Login verifies the credentials. Archived users cannot authenticate.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*orm.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		var notFound *orm.NotFoundError
		if errors.As(err, &notFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if user.IsArchived {
		return nil, "", ErrAccountArchived
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueToken signs a JWT with subject id and role claims.
func (s *Service) IssueToken(user *orm.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenExpiry).Unix(),
	})

	return token.SignedString(s.secret)
}

// ResolveCaller parses a bearer token into the caller identity.
func (s *Service) ResolveCaller(tokenString string) (report.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return report.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return report.Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return report.Identity{}, ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role, ok := orm.ParseRole(roleStr)
	if !ok {
		role = orm.RoleUser
	}

	return report.Identity{UserID: uint64(sub), Role: role}, nil
}
