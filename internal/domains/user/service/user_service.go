package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	blogmodel "blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/user"
	"blog-backend/pkg/cache"
)

// TokenIssuer là phần của jwt.Manager mà service cần
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username string, isStaff bool) (string, time.Time, error)
}

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	tokens     TokenIssuer
	cache      cache.Cache // nil = không cache
	bcryptCost int
}

// NewUserService tạo service instance
// bcryptCost <= 0 dùng bcrypt.DefaultCost
func NewUserService(repo user.Repository, tokens TokenIssuer, c cache.Cache, bcryptCost int) user.Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		tokens:     tokens,
		cache:      c,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới, có bio thì tạo luôn author profile
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		Username:     req.Username,
		PasswordHash: string(passwordHash),
	}

	// 3. PERSIST
	if req.Bio == "" {
		if err := s.repo.Create(ctx, newUser); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	} else {
		if err := s.repo.CreateWithAuthor(ctx, newUser, req.Bio); err != nil {
			return nil, fmt.Errorf("create user with author profile: %w", err)
		}
		// Blogger mới xuất hiện trong danh sách bloggers
		s.invalidateBloggers(ctx)
	}

	log.Info().Int64("user_id", newUser.ID).Str("username", newUser.Username).
		Bool("author", newUser.IsAuthor()).Msg("user registered")

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login xác thực username/password và trả về access token
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND USER
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Không tiết lộ username có tồn tại hay không
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 4. GENERATE JWT
	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Username, u.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID int64) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	dto := u.ToDTO()
	return &dto, nil
}

// SetStaff cấp / thu hồi quyền vào /admin
func (s *userService) SetStaff(ctx context.Context, req user.PromoteRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.SetStaff(ctx, req.Username, req.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("set staff: %w", err)
	}

	log.Info().Str("username", u.Username).Bool("is_staff", u.IsStaff).Msg("staff flag updated")
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) invalidateBloggers(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, blogmodel.CachePatternBloggerList); err != nil {
		log.Warn().Err(err).Str("pattern", blogmodel.CachePatternBloggerList).Msg("cache invalidation failed")
	}
}
