package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo pos.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo pos.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create adds a new catalog entry
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := pos.NewProduct(req.Name, req.Description, req.Price, pos.ProductCategory(req.Category), req.StockQty)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.String("category", product.Category.String()),
	)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a catalog entry by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves catalog entries ordered by name
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	if filter.Category != "" && !pos.ProductCategory(filter.Category).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown product category: "+filter.Category)
	}

	domainFilter := listFilter(filter.Page, filter.PageSize)
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update changes the given attributes of a catalog entry
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	name, price, category, stock := product.Name, product.Price, product.Category, product.StockQty
	if req.Name != nil {
		name = *req.Name
	}
	if req.Price != nil {
		price = *req.Price
	}
	if req.Category != nil {
		category = pos.ProductCategory(*req.Category)
	}
	if req.StockQty != nil {
		stock = *req.StockQty
	}
	if err := product.Update(name, price, category, stock); err != nil {
		return nil, err
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("product_id", product.ID.String()))
	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) findProduct(ctx context.Context, productID uuid.UUID) (*pos.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	return product, nil
}

// PaymentService lists recorded payments
type PaymentService struct {
	paymentRepo pos.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo pos.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// List retrieves payments newest first, optionally for one invoice
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, error) {
	page := listFilter(filter.Page, filter.PageSize)
	payments, err := s.paymentRepo.FindAll(ctx, pos.PaymentFilter{
		InvoiceID: filter.InvoiceID,
		Page:      page.Page,
		PageSize:  page.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}
