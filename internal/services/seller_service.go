package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

type SellerVerification struct {
	Verify   bool                     `json:"verify"`
	User     *repository.UpdateResult `json:"user"`
	Products *repository.UpdateResult `json:"products,omitempty"`
}

// SellerService owns the seller-verification cascade.
type SellerService struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewSellerService(store *repository.Store) *SellerService {
	return &SellerService{users: store.Users, products: store.Products}
}

// SetSellerVerification flips verify on the user and then on every product
// listed under email. The two updates are independent: when the product
// update fails the user change stays, and the partial result is returned
// alongside the error.
func (s *SellerService) SetSellerVerification(ctx context.Context, userID, email string, currentVerify bool) (*SellerVerification, error) {
	verify := !currentVerify
	out := &SellerVerification{Verify: verify}

	userRes, err := s.users.SetVerify(ctx, userID, verify)
	if err != nil {
		return nil, fmt.Errorf("failed to update seller verification: %w", err)
	}
	out.User = userRes

	productRes, err := s.products.SetVerifyBySeller(ctx, email, verify)
	if err != nil {
		return out, fmt.Errorf("failed to cascade seller verification to products: %w", err)
	}
	out.Products = productRes
	return out, nil
}
