package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for catalog handlers
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest represents a partial product update. Omitted fields
// are left unchanged; stock uses a pointer so an explicit 0 is applied.
type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"omitempty,gt=0"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"`
}

// AddReviewRequest represents the request body for reviewing a product
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ProductListResponse is one page of the catalog.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	Total    int64             `json:"total"`
}

// ListProducts handles the public catalog listing with search, filters,
// sorting and pagination via query parameters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input := &usecase.ListProductsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		input.Limit = limit
	}
	if minPrice, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		input.MinPrice = &minPrice
	}
	if maxPrice, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		input.MaxPrice = &maxPrice
	}

	output, err := h.catalogUC.ListProducts(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ProductListResponse{
		Products: newProductResponseList(output.Products),
		Page:     output.Page,
		Pages:    output.Pages,
		Total:    output.Total,
	})
}

// GetProduct handles fetching a single product with its reviews
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product))
}

// CreateProduct handles the admin creation of a product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
		CreatedBy:   userID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(product))
}

// UpdateProduct handles the admin partial update of a product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), &usecase.UpdateProductInput{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newProductResponse(product))
}

// DeleteProduct handles the admin removal of a product
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// AddReview handles appending a review to a product
func (h *ProductHandler) AddReview(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.catalogUC.AddReview(c.Request().Context(), &usecase.AddReviewInput{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(product))
}
