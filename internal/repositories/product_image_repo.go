package repositories

import (
	"context"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	ListByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productImageRepo struct {
	db DB
}

func NewProductImageRepository(db DB) ProductImageRepository {
	return &productImageRepo{db: db}
}

func (r *productImageRepo) Create(ctx context.Context, image *models.ProductImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO product_images (id, tenant_id, product_id, object_key, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		image.ID, image.TenantID, image.ProductID, image.ObjectKey, image.URL, image.CreatedAt)
	return err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductImage, error) {
	query := `
		SELECT id, tenant_id, product_id, object_key, url, created_at
		FROM product_images
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		img := &models.ProductImage{}
		if err := rows.Scan(&img.ID, &img.TenantID, &img.ProductID, &img.ObjectKey, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
