package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

type AuthService struct {
	users   UserStore
	jwtUtil *utils.JWTUtil
	redis   *utils.RedisClient
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateFields(ctx context.Context, userID primitive.ObjectID, fields bson.M) error
	TouchLastLogin(ctx context.Context, userID primitive.ObjectID, at time.Time) error
}

func NewAuthService(users UserStore, jwtUtil *utils.JWTUtil, redis *utils.RedisClient) *AuthService {
	return &AuthService{users: users, jwtUtil: jwtUtil, redis: redis}
}

// Signup registers a new account. The email is matched case-insensitively
// against existing accounts; a hit is a Conflict.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if role == "" {
		role = "customer"
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", models.ErrValidation, role)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters long", models.ErrValidation)
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(user); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return nil, err
	}

	log.Printf("New user registered: %s (%s)", created.Email, created.Role)
	return created, nil
}

// Login verifies credentials and issues an 8-hour bearer token. Unknown email
// and wrong password return the same generic Unauthorized so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, models.ErrUnauthorized
	}

	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: account is deactivated", models.ErrUnauthorized)
	}

	if err := user.ComparePassword(password); err != nil {
		return "", nil, models.ErrUnauthorized
	}

	user.LastLoginAt = time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, user.LastLoginAt); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Email, err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Name, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	log.Printf("User logged in: %s (%s)", user.Email, user.Role)
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	cacheKey := "user_profile:" + userID
	if s.redis != nil {
		var cached models.User
		if err := s.redis.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, user, profileCacheTTL); err != nil {
			log.Printf("Failed to cache user profile: %v", err)
		}
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, name, phone *string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	fields := bson.M{}
	if name != nil && *name != "" {
		fields["name"] = *name
	}
	if phone != nil && *phone != "" {
		fields["phone"] = *phone
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if s.redis != nil {
		_ = s.redis.Delete(ctx, "user_profile:"+userID)
	}

	return s.users.GetByID(ctx, id)
}

// Logout blacklists the token's jti until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiry time.Time) error {
	if s.redis == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, "blacklist:"+jti, true, ttl)
}

// FetchActiveUser implements utils.UserFetcher for the auth middleware. It
// reads the store directly, not the profile cache, so a deactivation takes
// effect on the very next request instead of after the cache TTL.
func (s *AuthService) FetchActiveUser(ctx context.Context, userID string) (*utils.ActiveUser, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return &utils.ActiveUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}, nil
}
