package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-accounts/internal/core/domain"
	"github.com/arklim/social-platform-accounts/internal/infra/security"
	"github.com/arklim/social-platform-accounts/internal/usecase"
)

// AccountOperations is the slice of the account service the handler needs.
type AccountOperations interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	EditProfile(ctx context.Context, input usecase.ProfileEditInput) (*domain.Account, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
	Delete(ctx context.Context, id int64) (*domain.Account, error)
}

// AccountHandler exposes the account lifecycle endpoints.
type AccountHandler struct {
	accounts  AccountOperations
	passwords *security.PasswordValidator
}

func NewAccountHandler(accounts AccountOperations, passwords *security.PasswordValidator) *AccountHandler {
	if passwords == nil {
		passwords = security.DefaultPasswordValidator()
	}
	return &AccountHandler{
		accounts:  accounts,
		passwords: passwords,
	}
}

// RegisterRoutes binds the account endpoints.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sign-up", h.SignUp)
	r.POST("/sign-in", h.SignIn)
	r.PATCH("/profile", h.EditProfile)
	r.POST("/password/change", h.ChangePassword)
	r.DELETE("/:id", h.Delete)
}

// SignUp creates a new account.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid sign-up payload"))
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := h.passwords.Validate(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		Country:        req.Country,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
	})
	if err != nil {
		var dup *usecase.DuplicateIdentifierError
		if errors.As(err, &dup) {
			resp := NewErrorResponse(c, "identifier already in use")
			resp.Fields = dup.Fields
			c.JSON(http.StatusConflict, resp)
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUnavailable, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
		}, http.StatusInternalServerError, "failed to register account")
		return
	}

	c.JSON(http.StatusCreated, SignUpResponse{Account: newAccountView(account)})
}

// SignIn authenticates an email/password pair and marks the account online.
func (h *AccountHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid sign-in payload"))
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "email not found"},
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
			{Err: usecase.ErrUnavailable, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
		}, http.StatusInternalServerError, "failed to sign in")
		return
	}

	c.JSON(http.StatusOK, SignInResponse{
		Message: "signed in",
		Account: newAccountView(account),
	})
}

// EditProfile applies a partial profile update.
func (h *AccountHandler) EditProfile(c *gin.Context) {
	var req EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return
	}

	account, err := h.accounts.EditProfile(c.Request.Context(), usecase.ProfileEditInput{
		AccountID:      req.ID,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Country:        req.Country,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		var dup *usecase.DuplicateIdentifierError
		if errors.As(err, &dup) {
			resp := NewErrorResponse(c, "identifier already in use")
			resp.Fields = dup.Fields
			c.JSON(http.StatusConflict, resp)
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
			{Err: usecase.ErrUnavailable, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
		}, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, EditProfileResponse{Account: newAccountView(account)})
}

// ChangePassword rotates the account password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid password payload"))
		return
	}

	if err := h.passwords.Validate(req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), strings.TrimSpace(req.Email), req.CurrentPassword, req.NewPassword)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "email not found"},
			{Err: usecase.ErrPasswordMismatch, Status: http.StatusUnauthorized, Message: "current password does not match"},
			{Err: usecase.ErrPasswordUnchanged, Status: http.StatusBadRequest, Message: "new password must differ from current password"},
			{Err: usecase.ErrUnavailable, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
		}, http.StatusInternalServerError, "failed to change password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password changed"})
}

// Delete tombstones the account with the given id.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid account id"))
		return
	}

	account, err := h.accounts.Delete(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "account not found"},
			{Err: usecase.ErrAlreadyDeleted, Status: http.StatusConflict, Message: "account already deleted"},
			{Err: usecase.ErrUnavailable, Status: http.StatusServiceUnavailable, Message: "service temporarily unavailable"},
		}, http.StatusInternalServerError, "failed to delete account")
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Message: "account deleted",
		Account: newAccountView(account),
	})
}
