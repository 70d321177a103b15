package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepo) UpsertByName(ctx context.Context, category *models.Category) (*repository.UpdateResult, error) {
	db := r.db.WithContext(ctx)

	var columns []string
	if category.Image != "" {
		columns = append(columns, "image")
	}

	row := models.Category{ID: category.ID, Name: category.Name, Image: category.Image}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	res := db.Clauses(onConflict("categories", "name", columns)).Create(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to upsert category: %w", res.Error)
	}

	var stored models.Category
	if err := db.Select("id").Where("name = ?", category.Name).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", notFound(err))
	}
	category.ID = stored.ID
	return upserted(res, row.ID, stored.ID), nil
}

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Order("posted_at DESC")
	if filter.SellerEmail != "" {
		query = query.Where("seller_email = ?", filter.SellerEmail)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AdvertisedOnly {
		query = query.Where("advertise = ?", true)
	}
	if filter.AvailableOnly {
		query = query.Where("sales_status = ?", models.SalesAvailable)
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productRepo) Insert(ctx context.Context, product *models.Product) (*repository.InsertResult, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.SalesStatus == "" {
		product.SalesStatus = models.SalesAvailable
	}
	if product.PostedAt.IsZero() {
		product.PostedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: product.ID}, nil
}

func (r *productRepo) SetAdvertise(ctx context.Context, id string, advertise bool) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("advertise", advertise)
	return updated(res, "product")
}

func (r *productRepo) MarkSold(ctx context.Context, id string) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("sales_status", models.SalesSold)
	return updated(res, "product")
}

func (r *productRepo) SetVerifyBySeller(ctx context.Context, sellerEmail string, verify bool) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("seller_email = ?", sellerEmail).Update("verify", verify)
	return updated(res, "products")
}

func (r *productRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return deleted(res, "product")
}
