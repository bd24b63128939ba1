package handlers

import (
	"github.com/rsnteam/telemart-golang/internal/config"
	"github.com/rsnteam/telemart-golang/internal/service"
	"github.com/rsnteam/telemart-golang/internal/session"
	"github.com/rsnteam/telemart-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store    store.Storage        // User, product and cart persistence
	Sessions session.Store        // token -> userID session records
	Cart     *service.CartService // The cart workflow core
	Cfg      config.Config        // Cookie flags, origins, secrets
}
