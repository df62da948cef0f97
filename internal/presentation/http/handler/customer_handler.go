package handler

import (
	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CustomerInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		GSTNumber: req.GSTNumber,
		State:     req.State,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// GetByMobile looks a customer up by mobile number, used at the billing counter
func (h *CustomerHandler) GetByMobile(c *gin.Context) {
	mobile := c.Param("mobile")
	if mobile == "" {
		response.BadRequest(c, "Mobile number is required")
		return
	}

	customer, err := h.customerService.GetCustomerByMobile(c.Request.Context(), mobile)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.CustomerInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		GSTNumber: req.GSTNumber,
		State:     req.State,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer (admin only)
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// CompanyHandler handles supplier company HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles creating a supplier company (admin only)
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), &service.CompanyInput{
		Name:      req.Name,
		GSTNumber: req.GSTNumber,
		State:     req.State,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// Get handles getting a single company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// Update handles updating a company (admin only)
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, &service.CompanyInput{
		Name:      req.Name,
		GSTNumber: req.GSTNumber,
		State:     req.State,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// Delete handles deleting a company (admin only)
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing companies
func (h *CompanyHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.companyService.ListCompanies(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}
