package salesapiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/vendora/sales-api/internal/domains/accounts/domain"
	accountsports "github.com/vendora/sales-api/internal/domains/accounts/ports"
	"github.com/vendora/sales-api/internal/shared/identity"
)

// UsersAPI implements the account endpoints.
type UsersAPI struct {
	service accountsports.Service
}

// NewUsersAPI wires dependencies.
func NewUsersAPI(service accountsports.Service) UsersAPI {
	return UsersAPI{service: service}
}

func fromDomainUser(user *accountsdomain.User) User {
	return User{
		Id:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
	}
}

// Post /v1/users
// Register a vendor account
func (api *UsersAPI) RegisterUser(c *gin.Context) {
	var payload RegisterUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Email, payload.Name, payload.Surname, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainUser(user))
}

// Post /v1/users/login
// Exchange credentials for a bearer token
func (api *UsersAPI) LoginUser(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Get /v1/me
// Return the authenticated account
func (api *UsersAPI) CurrentUser(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), caller.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainUser(user))
}

// Get /v1/users
// List vendor accounts
func (api *UsersAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, fromDomainUser(user))
	}
	c.JSON(http.StatusOK, result)
}
