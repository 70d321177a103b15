package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

type categoryRepo struct {
	d *data
}

func (r *categoryRepo) List(_ context.Context) ([]models.Category, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	categories := filter(r.d.categories, func(*models.Category) bool { return true })
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *categoryRepo) UpsertByName(_ context.Context, category *models.Category) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	byName := func(c *models.Category) bool { return c.Name == category.Name }
	if i := indexOf(r.d.categories, byName); i >= 0 {
		category.ID = r.d.categories[i].ID
		return updateWhere(r.d.categories, byName, func(c *models.Category) bool {
			if category.Image == "" || c.Image == category.Image {
				return false
			}
			c.Image = category.Image
			return true
		}), nil
	}

	category.ID = newID(category.ID)
	r.d.categories = append(r.d.categories, *category)
	return &repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: category.ID}, nil
}

type productRepo struct {
	d *data
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	products := filter(r.d.products, func(p *models.Product) bool {
		if f.SellerEmail != "" && p.SellerEmail != f.SellerEmail {
			return false
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			return false
		}
		if f.AdvertisedOnly && !p.Advertise {
			return false
		}
		if f.AvailableOnly && p.SalesStatus != models.SalesAvailable {
			return false
		}
		return true
	})
	sort.SliceStable(products, func(i, j int) bool { return products[i].PostedAt.After(products[j].PostedAt) })
	return products, nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	i := indexOf(r.d.products, func(p *models.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	product := r.d.products[i]
	return &product, nil
}

func (r *productRepo) Insert(_ context.Context, product *models.Product) (*repository.InsertResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	product.ID = newID(product.ID)
	if product.SalesStatus == "" {
		product.SalesStatus = models.SalesAvailable
	}
	if product.PostedAt.IsZero() {
		product.PostedAt = time.Now().UTC()
	}
	r.d.products = append(r.d.products, *product)
	return &repository.InsertResult{Acknowledged: true, InsertedID: product.ID}, nil
}

func (r *productRepo) SetAdvertise(_ context.Context, id string, advertise bool) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.products, func(p *models.Product) bool { return p.ID == id }, func(p *models.Product) bool {
		if p.Advertise == advertise {
			return false
		}
		p.Advertise = advertise
		return true
	}), nil
}

func (r *productRepo) MarkSold(_ context.Context, id string) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.products, func(p *models.Product) bool { return p.ID == id }, func(p *models.Product) bool {
		if p.SalesStatus == models.SalesSold {
			return false
		}
		p.SalesStatus = models.SalesSold
		return true
	}), nil
}

func (r *productRepo) SetVerifyBySeller(_ context.Context, sellerEmail string, verify bool) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.products, func(p *models.Product) bool { return p.SellerEmail == sellerEmail }, func(p *models.Product) bool {
		if p.Verify == verify {
			return false
		}
		p.Verify = verify
		return true
	}), nil
}

func (r *productRepo) Delete(_ context.Context, id string) (*repository.DeleteResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return deleteWhere(&r.d.products, func(p *models.Product) bool { return p.ID == id }), nil
}
