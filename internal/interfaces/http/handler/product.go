package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	posapp "github.com/shopdesk/backend/internal/application/pos"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *posapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *posapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a request to add a catalog entry
// @Description Request body for creating a product or service
type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=200" example:"Haircut"`
	Description string      `json:"description" binding:"max=2000" example:"Wash and cut"`
	Price       json.Number `json:"price" binding:"required,money" swaggertype:"string" example:"35.00"`
	Category    string      `json:"category" binding:"required,oneof=service product" example:"service"`
	StockQty    int         `json:"stock_qty" binding:"min=0" example:"0"`
	IsActive    *bool       `json:"is_active" example:"true"`
}

// UpdateProductRequest represents a partial update of a catalog entry
// @Description Request body for updating a product; omitted fields are unchanged
type UpdateProductRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=200" example:"Haircut"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	Price       *json.Number `json:"price" binding:"omitempty,money" swaggertype:"string" example:"40.00"`
	Category    *string      `json:"category" binding:"omitempty,oneof=service product" example:"service"`
	StockQty    *int         `json:"stock_qty" binding:"omitempty,min=0" example:"12"`
	IsActive    *bool        `json:"is_active" example:"true"`
}

// ListProductsQuery holds the catalog filters
type ListProductsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=service product"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @Summary      List products
// @Description  List catalog entries ordered by name
// @Tags         products
// @Produce      json
// @Param        category query string false "Category" Enums(service, product)
// @Param        active query bool false "Only active (true) or inactive (false) entries"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]posapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var query ListProductsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	products, err := h.productService.List(c.Request.Context(), posapp.ProductListFilter{
		Category: query.Category,
		IsActive: query.Active,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetByID godoc
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=posapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.ParamUUID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create godoc
// @Summary      Create product
// @Description  Add a product or service to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=posapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := toDecimal(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), posapp.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		StockQty:    req.StockQty,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update godoc
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body UpdateProductRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=posapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParamUUID(c, "id", "product")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	appReq := posapp.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		StockQty:    req.StockQty,
		IsActive:    req.IsActive,
	}
	if req.Price != nil {
		price, err := toDecimal(*req.Price)
		if err != nil {
			h.BadRequest(c, "Invalid price")
			return
		}
		appReq.Price = &price
	}

	product, err := h.productService.Update(c.Request.Context(), productID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
