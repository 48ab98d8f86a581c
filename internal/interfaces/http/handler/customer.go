package handler

import (
	"errors"

	appbilling "github.com/dashboard/backend/internal/application/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	BaseHandler
	queryService     *appbilling.QueryService
	dashboardService *appbilling.DashboardService
	customerService  *appbilling.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	queryService *appbilling.QueryService,
	dashboardService *appbilling.DashboardService,
	customerService *appbilling.CustomerService,
) *CustomerHandler {
	return &CustomerHandler{
		queryService:     queryService,
		dashboardService: dashboardService,
		customerService:  customerService,
	}
}

// RegisterRoutes registers customer routes on the API group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.List)
		customers.GET("/fields", h.Fields)
		customers.GET("/:id", h.GetByID)
		customers.POST("", h.Create)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

// List returns the owner's customers with invoice aggregates
// GET /api/v1/customers?query=
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter appbilling.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	summaries, err := h.dashboardService.SummarizeCustomers(c.Request.Context(), ownerID, filter.Query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summaries)
}

// Fields returns the (id, name) projection for selection widgets
// GET /api/v1/customers/fields
func (h *CustomerHandler) Fields(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fields, err := h.queryService.ListCustomerFields(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fields)
}

// GetByID returns one customer of the owner
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.queryService.GetCustomerByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Customer not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Create creates a customer for the owner
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appbilling.CustomerFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Update applies name/email to one customer. A foreign or absent id is
// a silent no-op, indistinguishable from success.
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appbilling.CustomerFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.customerService.UpdateCustomer(c.Request.Context(), ownerID, customerID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete deletes one customer under the same silent no-op contract
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), ownerID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
