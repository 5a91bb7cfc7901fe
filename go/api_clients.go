package salesapiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clientsdomain "github.com/vendora/sales-api/internal/domains/clients/domain"
	clientsports "github.com/vendora/sales-api/internal/domains/clients/ports"
	"github.com/vendora/sales-api/internal/shared/identity"
)

// ClientsAPI implements the client endpoints.
type ClientsAPI struct {
	service clientsports.Service
}

// NewClientsAPI wires dependencies.
func NewClientsAPI(service clientsports.Service) ClientsAPI {
	return ClientsAPI{service: service}
}

func fromDomainClient(client *clientsdomain.Client) Client {
	return Client{
		Id:       client.ID,
		Email:    client.Email,
		Name:     client.Name,
		Surname:  client.Surname,
		Company:  client.Company,
		Phone:    client.Phone,
		VendorId: client.VendorID,
	}
}

func fromDomainClients(clients []*clientsdomain.Client) []Client {
	result := make([]Client, 0, len(clients))
	for _, client := range clients {
		result = append(result, fromDomainClient(client))
	}
	return result
}

// Post /v1/clients
// Create a client owned by the caller
func (api *ClientsAPI) CreateClient(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var payload ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	client, err := api.service.Create(c.Request.Context(), caller.ID, &clientsdomain.Client{
		Email:   payload.Email,
		Name:    payload.Name,
		Surname: payload.Surname,
		Company: payload.Company,
		Phone:   payload.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainClient(client))
}

// Get /v1/clients/:clientId
// Fetch one of the caller's clients
func (api *ClientsAPI) GetClient(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	client, err := api.service.Get(c.Request.Context(), caller.ID, c.Param("clientId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainClient(client))
}

// Put /v1/clients/:clientId
// Update one of the caller's clients
func (api *ClientsAPI) UpdateClient(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var payload ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	client, err := api.service.Update(c.Request.Context(), caller.ID, c.Param("clientId"), clientsports.ClientUpdate{
		Email:   payload.Email,
		Name:    payload.Name,
		Surname: payload.Surname,
		Company: payload.Company,
		Phone:   payload.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainClient(client))
}

// Delete /v1/clients/:clientId
// Delete one of the caller's clients
func (api *ClientsAPI) DeleteClient(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), caller.ID, c.Param("clientId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/clients?all=true
// List the caller's clients, or every client when all=true
func (api *ClientsAPI) ListClients(c *gin.Context) {
	caller, err := identity.CurrentUser(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var clients []*clientsdomain.Client
	if c.Query("all") == "true" {
		clients, err = api.service.List(c.Request.Context())
	} else {
		clients, err = api.service.ListByVendor(c.Request.Context(), caller.ID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainClients(clients))
}
