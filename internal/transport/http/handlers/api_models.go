package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountView describes the externally visible account representation. The
// password hash never leaves the service.
type AccountView struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Country        *string   `json:"country,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	Online         bool      `json:"online"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newAccountView(account *domain.Account) AccountView {
	return AccountView{
		ID:             account.ID,
		FullName:       account.FullName,
		Username:       account.Username,
		Email:          account.Email,
		Phone:          account.Phone,
		Country:        account.Country,
		ProfilePicture: account.ProfilePicture,
		EmailVerified:  account.EmailVerified,
		Online:         account.Online,
		IsDeleted:      account.Deleted(),
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// SignUpRequest defines the account registration payload.
type SignUpRequest struct {
	FullName       string  `json:"full_name" binding:"required,max=55"`
	Username       string  `json:"username" binding:"required,max=55"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required,len=11,numeric"`
	Country        *string `json:"country" binding:"omitempty,max=55"`
	ProfilePicture *string `json:"profile_picture" binding:"omitempty,uri"`
	Password       string  `json:"password" binding:"required"`
}

// SignUpResponse contains the created account.
type SignUpResponse struct {
	Account AccountView `json:"account"`
}

// SignInRequest defines the authentication payload.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse is returned on successful authentication.
type SignInResponse struct {
	Message string      `json:"message"`
	Account AccountView `json:"account"`
}

// EditProfileRequest carries a partial profile update. Absent fields stay
// untouched.
type EditProfileRequest struct {
	ID             int64   `json:"id" binding:"required"`
	FullName       *string `json:"full_name" binding:"omitempty,max=55"`
	Phone          *string `json:"phone" binding:"omitempty,len=11,numeric"`
	Country        *string `json:"country" binding:"omitempty,max=55"`
	ProfilePicture *string `json:"profile_picture" binding:"omitempty,uri"`
}

// EditProfileResponse contains the updated account.
type EditProfileResponse struct {
	Account AccountView `json:"account"`
}

// ChangePasswordRequest defines the password rotation payload.
type ChangePasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// DeleteResponse contains the tombstoned account.
type DeleteResponse struct {
	Message string      `json:"message"`
	Account AccountView `json:"account"`
}

// HealthResponse describes the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse describes the readiness payload with per-check results.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
