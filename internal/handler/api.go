package handler

import (
	"github.com/summitlink/internal/service"
	"github.com/summitlink/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	contacts *service.ContactService
	photos   *service.PhotoService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, store storage.BlobStore) *API {
	return &API{
		db:       gdb,
		contacts: service.NewContactService(gdb),
		photos:   service.NewPhotoService(store),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
