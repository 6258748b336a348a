package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	AdminUC   usecase.UserAdminUsecase
	Logger    *slog.Logger
}

// UserHandler holds dependencies for profile and user administration handlers
type UserHandler struct {
	profileUC usecase.ProfileUsecase
	adminUC   usecase.UserAdminUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		profileUC: params.ProfileUC,
		adminUC:   params.AdminUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents the JSON request body for a profile update.
// All fields are optional; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	AvatarURL string `json:"avatarUrl"`
}

// AddAddressRequest represents the request body for adding an address
type AddAddressRequest struct {
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

// ToggleWishlistRequest represents the request body for a wishlist toggle
type ToggleWishlistRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// AdminUpdateUserRequest represents the request body for an admin user update
type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"`
}

// GetProfile handles retrieving the caller's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile handles updating the caller's own profile. The request may be
// JSON or multipart form data; the multipart form may carry an avatar file.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := &usecase.UpdateProfileInput{UserID: userID}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		input.Name = c.FormValue("name")
		input.Email = c.FormValue("email")
		input.Password = c.FormValue("password")
		input.AvatarURL = c.FormValue("avatarUrl")

		fileHeader, err := c.FormFile("avatar")
		if err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				return response.BadRequest(c, "INVALID_INPUT", "Could not read avatar file")
			}
			defer src.Close()

			input.Avatar = &usecase.AvatarUpload{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get(echo.HeaderContentType),
				Body:        src,
			}
		}
	} else {
		var req UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
		}

		if err := c.Validate(&req); err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		}

		input.Name = req.Name
		input.Email = req.Email
		input.Password = req.Password
		input.AvatarURL = req.AvatarURL
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// AddAddress handles adding an address to the caller's address book
func (h *UserHandler) AddAddress(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req AddAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	addresses, err := h.profileUC.AddAddress(c.Request().Context(), &usecase.AddAddressInput{
		UserID:    userID,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAddressResponseList(addresses))
}

// DeleteAddress handles removing an address from the caller's address book
func (h *UserHandler) DeleteAddress(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	addresses, err := h.profileUC.DeleteAddress(c.Request().Context(), userID, addressID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAddressResponseList(addresses))
}

// ToggleWishlist handles adding or removing a product on the caller's wishlist
func (h *UserHandler) ToggleWishlist(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ToggleWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wishlist input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	wishlist, err := h.profileUC.ToggleWishlist(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"wishlist": wishlist})
}

// ListUsers handles the admin listing of all accounts
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.adminUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponseList(users))
}

// GetUser handles the admin fetch of a single account
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, err := h.adminUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateUser handles the admin update of a single account
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	var req AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.adminUC.UpdateUser(c.Request().Context(), &usecase.AdminUpdateUserInput{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Role:   entity.Role(req.Role),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles the admin removal of an account
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
