package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxBioLength      = 400

	UsernameHelpText = "Required. 150 characters or fewer. Letters, digits and @/./+/-/_ only."
)

// Letters, digits và @ . + - _ (unicode letters được chấp nhận)
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - đăng ký account, bio != "" thì tạo luôn author profile
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, MaxUsernameLength),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and @/./+/-/_"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(MinPasswordLength, MaxPasswordLength).Error("password must be 8-128 characters"),
			validation.By(notEntirelyNumeric),
		),
		validation.Field(&r.Bio,
			validation.When(r.Bio != "", validation.RuneLength(1, MaxBioLength)),
		),
	)
}

func notEntirelyNumeric(value interface{}) error {
	s, _ := value.(string)
	if s != "" && is.Digit.Validate(s) == nil {
		return validation.NewError("validation_password_numeric", "password cannot be entirely numeric")
	}
	return nil
}

// LoginRequest - đăng nhập bằng username/password
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next,omitempty" form:"next"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - JWT access token
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
	Next        string    `json:"next,omitempty"`
}

// PromoteRequest - cấp / thu hồi quyền admin console
type PromoteRequest struct {
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

func (r PromoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type UserDTO struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	IsStaff    bool      `json:"is_staff"`
	AuthorID   *int64    `json:"author_id,omitempty"`
	BloggerURL string    `json:"blogger_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginFormContext - dữ liệu cho login form (client bị redirect tới đây)
type LoginFormContext struct {
	Next   string               `json:"next,omitempty"`
	Action string               `json:"action"`
	Fields map[string]FormField `json:"fields"`
}

type FormField struct {
	Required  bool   `json:"required"`
	MaxLength int    `json:"max_length,omitempty"`
	HelpText  string `json:"help_text,omitempty"`
}

func NewLoginFormContext(action, next string) LoginFormContext {
	return LoginFormContext{
		Next:   next,
		Action: action,
		Fields: map[string]FormField{
			"username": {Required: true, MaxLength: MaxUsernameLength, HelpText: UsernameHelpText},
			"password": {Required: true},
		},
	}
}
