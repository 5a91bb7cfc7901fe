package salesapiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendora/sales-api/internal/shared/identity"
)

// Route defines the parameters for an api endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	Secured     bool
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined api endpoints.
type Routes map[string]Route

// ApiHandleFunctions holds the implementations of the api endpoints.
type ApiHandleFunctions struct {
	UsersAPI    UsersAPI
	ClientsAPI  ClientsAPI
	ProductsAPI ProductsAPI
	OrdersAPI   OrdersAPI
	ReportsAPI  ReportsAPI
}

// NewRouter returns a new router with the given middleware applied before
// route registration.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine adds the api routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Secured {
			handlers = append([]gin.HandlerFunc{identity.Require()}, handlers...)
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"RegisterUser": {
			Name:        "RegisterUser",
			Method:      http.MethodPost,
			Pattern:     "/v1/users",
			HandlerFunc: handleFunctions.UsersAPI.RegisterUser,
		},
		"LoginUser": {
			Name:        "LoginUser",
			Method:      http.MethodPost,
			Pattern:     "/v1/users/login",
			HandlerFunc: handleFunctions.UsersAPI.LoginUser,
		},
		"ListUsers": {
			Name:        "ListUsers",
			Method:      http.MethodGet,
			Pattern:     "/v1/users",
			Secured:     true,
			HandlerFunc: handleFunctions.UsersAPI.ListUsers,
		},
		"CurrentUser": {
			Name:        "CurrentUser",
			Method:      http.MethodGet,
			Pattern:     "/v1/me",
			Secured:     true,
			HandlerFunc: handleFunctions.UsersAPI.CurrentUser,
		},
		"CreateClient": {
			Name:        "CreateClient",
			Method:      http.MethodPost,
			Pattern:     "/v1/clients",
			Secured:     true,
			HandlerFunc: handleFunctions.ClientsAPI.CreateClient,
		},
		"GetClient": {
			Name:        "GetClient",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients/:clientId",
			Secured:     true,
			HandlerFunc: handleFunctions.ClientsAPI.GetClient,
		},
		"UpdateClient": {
			Name:        "UpdateClient",
			Method:      http.MethodPut,
			Pattern:     "/v1/clients/:clientId",
			Secured:     true,
			HandlerFunc: handleFunctions.ClientsAPI.UpdateClient,
		},
		"DeleteClient": {
			Name:        "DeleteClient",
			Method:      http.MethodDelete,
			Pattern:     "/v1/clients/:clientId",
			Secured:     true,
			HandlerFunc: handleFunctions.ClientsAPI.DeleteClient,
		},
		"ListClients": {
			Name:        "ListClients",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients",
			Secured:     true,
			HandlerFunc: handleFunctions.ClientsAPI.ListClients,
		},
		"CreateProduct": {
			Name:        "CreateProduct",
			Method:      http.MethodPost,
			Pattern:     "/v1/products",
			Secured:     true,
			HandlerFunc: handleFunctions.ProductsAPI.CreateProduct,
		},
		"SearchProducts": {
			Name:        "SearchProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/products/search",
			HandlerFunc: handleFunctions.ProductsAPI.SearchProducts,
		},
		"GetProduct": {
			Name:        "GetProduct",
			Method:      http.MethodGet,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.ProductsAPI.GetProduct,
		},
		"UpdateProduct": {
			Name:        "UpdateProduct",
			Method:      http.MethodPatch,
			Pattern:     "/v1/products/:productId",
			Secured:     true,
			HandlerFunc: handleFunctions.ProductsAPI.UpdateProduct,
		},
		"DeleteProduct": {
			Name:        "DeleteProduct",
			Method:      http.MethodDelete,
			Pattern:     "/v1/products/:productId",
			Secured:     true,
			HandlerFunc: handleFunctions.ProductsAPI.DeleteProduct,
		},
		"ListProducts": {
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.ProductsAPI.ListProducts,
		},
		"PlaceOrder": {
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.PlaceOrder,
		},
		"GetOrder": {
			Name:        "GetOrder",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders/:orderId",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.GetOrder,
		},
		"UpdateOrder": {
			Name:        "UpdateOrder",
			Method:      http.MethodPatch,
			Pattern:     "/v1/orders/:orderId",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.UpdateOrder,
		},
		"DeleteOrder": {
			Name:        "DeleteOrder",
			Method:      http.MethodDelete,
			Pattern:     "/v1/orders/:orderId",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.DeleteOrder,
		},
		"ListOrders": {
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.ListOrders,
		},
		"TopClients": {
			Name:        "TopClients",
			Method:      http.MethodGet,
			Pattern:     "/v1/reports/top-clients",
			Secured:     true,
			HandlerFunc: handleFunctions.ReportsAPI.TopClients,
		},
		"TopVendors": {
			Name:        "TopVendors",
			Method:      http.MethodGet,
			Pattern:     "/v1/reports/top-vendors",
			Secured:     true,
			HandlerFunc: handleFunctions.ReportsAPI.TopVendors,
		},
	}
}
