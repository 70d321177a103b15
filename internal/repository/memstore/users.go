package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

type userRepo struct {
	d *data
}

func (r *userRepo) List(_ context.Context, f repository.UserFilter) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return filter(r.d.users, func(u *models.User) bool {
		return f.AccountType == "" || u.AccountType == f.AccountType
	}), nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *userRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	i := indexOf(r.d.users, match)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	user := r.d.users[i]
	return &user, nil
}

func (r *userRepo) Insert(_ context.Context, user *models.User) (*repository.InsertResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if indexOf(r.d.users, func(u *models.User) bool { return u.Email == user.Email }) >= 0 {
		return nil, fmt.Errorf("failed to create user %q: %w", user.Email, repository.ErrDuplicate)
	}
	now := time.Now().UTC()
	user.ID = newID(user.ID)
	user.CreatedAt = now
	user.UpdatedAt = now
	r.d.users = append(r.d.users, *user)
	return &repository.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

func (r *userRepo) UpsertByEmail(_ context.Context, user *models.User) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	now := time.Now().UTC()
	byEmail := func(u *models.User) bool { return u.Email == user.Email }
	if indexOf(r.d.users, byEmail) < 0 {
		created := models.User{
			ID:          newID(""),
			Name:        user.Name,
			Email:       user.Email,
			PhotoURL:    user.PhotoURL,
			AccountType: user.AccountType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		r.d.users = append(r.d.users, created)
		return &repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: created.ID}, nil
	}

	return updateWhere(r.d.users, byEmail, func(u *models.User) bool {
		changed := false
		if user.Name != "" && u.Name != user.Name {
			u.Name, changed = user.Name, true
		}
		if user.PhotoURL != "" && u.PhotoURL != user.PhotoURL {
			u.PhotoURL, changed = user.PhotoURL, true
		}
		if user.AccountType != "" && u.AccountType != user.AccountType {
			u.AccountType, changed = user.AccountType, true
		}
		if changed {
			u.UpdatedAt = now
		}
		return changed
	}), nil
}

func (r *userRepo) SetVerify(_ context.Context, id string, verify bool) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.users, func(u *models.User) bool { return u.ID == id }, func(u *models.User) bool {
		if u.Verify == verify {
			return false
		}
		u.Verify = verify
		return true
	}), nil
}

func (r *userRepo) SetRole(_ context.Context, id string, role string) (*repository.UpdateResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return updateWhere(r.d.users, func(u *models.User) bool { return u.ID == id }, func(u *models.User) bool {
		if u.Role == role {
			return false
		}
		u.Role = role
		return true
	}), nil
}

func (r *userRepo) Delete(_ context.Context, id string) (*repository.DeleteResult, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return deleteWhere(&r.d.users, func(u *models.User) bool { return u.ID == id }), nil
}
