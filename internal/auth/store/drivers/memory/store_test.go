package memory_test

import (
	"testing"

	"github.com/aussiebroadwan/mcauth/internal/auth/store"
	"github.com/aussiebroadwan/mcauth/internal/auth/store/drivers/memory"
	"github.com/aussiebroadwan/mcauth/internal/auth/store/storetest"
)

func TestRefreshTokens(t *testing.T) {
	storetest.RunRefreshTokens(t, func(t *testing.T) store.Store {
		return memory.NewStore()
	})
}
