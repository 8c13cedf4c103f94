package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

const productImageBucket = "product-images"

// ProductRequest carries the mutable catalog fields. SKU is only honored on
// create.
type ProductRequest struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	CostPrice     float64 `json:"cost_price"`
	SellingPrice  float64 `json:"selling_price"`
	ReorderLevel  int     `json:"reorder_level"`
	MinStockLevel int     `json:"min_stock_level"`
	MaxStockLevel int     `json:"max_stock_level"`
}

type ProductService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *ProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req *ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	UploadImage(ctx context.Context, tenantID, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.ProductImage, error)
	ListImages(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	imageRepo   repositories.ProductImageRepository
	minio       MinioService
	cache       caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, imageRepo repositories.ProductImageRepository, minioService MinioService, cache caching.CacheService) ProductService {
	return &productService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		minio:       minioService,
		cache:       cache,
	}
}

func (s *productService) validate(req *ProductRequest) error {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(req.UnitOfMeasure, "unit_of_measure"); err != nil {
		return err
	}
	if req.CostPrice < 0 || req.SellingPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", common.ErrValidation)
	}
	if req.ReorderLevel < 0 || req.MinStockLevel < 0 || req.MaxStockLevel < 0 {
		return fmt.Errorf("%w: stock levels cannot be negative", common.ErrValidation)
	}
	if req.MaxStockLevel > 0 && req.MaxStockLevel < req.MinStockLevel {
		return fmt.Errorf("%w: max stock level cannot be below min stock level", common.ErrValidation)
	}
	if err := common.SanitizeHTMLField(req.Description, "description"); err != nil {
		return err
	}
	return nil
}

func (s *productService) Create(ctx context.Context, tenantID uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := common.ValidateRequiredString(req.SKU, "sku"); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	// SKU is the tenant-scoped natural key.
	if _, err := s.productRepo.GetBySKU(ctx, tenantID, req.SKU); err == nil {
		return nil, fmt.Errorf("%w: sku %q already exists", common.ErrValidation, req.SKU)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	product := &models.Product{
		TenantID:      tenantID,
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		ReorderLevel:  req.ReorderLevel,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProduct(ctx, tenantID, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, tenantID, product, stockCacheTTL); err != nil {
			log.Printf("WARN: product cache write failed: %v", err)
		}
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.productRepo.List(ctx, tenantID, limit, offset)
}

func (s *productService) Update(ctx context.Context, tenantID, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.UnitOfMeasure = req.UnitOfMeasure
	product.CostPrice = req.CostPrice
	product.SellingPrice = req.SellingPrice
	product.ReorderLevel = req.ReorderLevel
	product.MinStockLevel = req.MinStockLevel
	product.MaxStockLevel = req.MaxStockLevel

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.DeleteProduct(ctx, tenantID, id); err != nil {
			log.Printf("WARN: product cache invalidation failed: %v", err)
		}
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteProduct(ctx, tenantID, id); err != nil {
			log.Printf("WARN: product cache invalidation failed: %v", err)
		}
	}
	return nil
}

func (s *productService) UploadImage(ctx context.Context, tenantID, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.ProductImage, error) {
	if _, err := s.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%s/%s-%s", tenantID, productID, uuid.New().String()[:8], filename)
	if err := s.minio.EnsureBucketExists(ctx, productImageBucket); err != nil {
		return nil, err
	}
	if err := s.minio.UploadImage(ctx, productImageBucket, objectKey, reader, size, contentType); err != nil {
		return nil, err
	}

	url, err := s.minio.GetPresignedURL(ctx, productImageBucket, objectKey, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		TenantID:  tenantID,
		ProductID: productID,
		ObjectKey: objectKey,
		URL:       url,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productService) ListImages(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductImage, error) {
	if _, err := s.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByProduct(ctx, tenantID, productID)
}
