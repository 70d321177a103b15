package memstore

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/repotest"
)

func TestContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Store {
		return New()
	})
}
