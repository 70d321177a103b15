package pgstore

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if filter.AccountType != "" {
		query = query.Where("account_type = ?", filter.AccountType)
	}

	users := []models.User{}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepo) Insert(ctx context.Context, user *models.User) (*repository.InsertResult, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, created(r.db, err, "user")
	}
	return &repository.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

func (r *userRepo) UpsertByEmail(ctx context.Context, user *models.User) (*repository.UpdateResult, error) {
	db := r.db.WithContext(ctx)

	// Absent profile fields are left alone on an existing row.
	var columns []string
	if user.Name != "" {
		columns = append(columns, "name")
	}
	if user.PhotoURL != "" {
		columns = append(columns, "photo_url")
	}
	if user.AccountType != "" {
		columns = append(columns, "account_type")
	}

	row := models.User{
		ID:          uuid.NewString(),
		Name:        user.Name,
		Email:       user.Email,
		PhotoURL:    user.PhotoURL,
		AccountType: user.AccountType,
	}
	res := db.Clauses(onConflict("users", "email", columns, "updated_at")).Create(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", res.Error)
	}

	var stored models.User
	if err := db.Select("id").Where("email = ?", user.Email).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", notFound(err))
	}
	return upserted(res, row.ID, stored.ID), nil
}

func (r *userRepo) SetVerify(ctx context.Context, id string, verify bool) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("verify", verify)
	return updated(res, "user")
}

func (r *userRepo) SetRole(ctx context.Context, id string, role string) (*repository.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	return updated(res, "user")
}

func (r *userRepo) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return deleted(res, "user")
}
