package services

import (
	"fmt"
	"mime/multipart"

	"github.com/mara-ellison/maras-boutique-api/config"
)

// AssetStore abstracts where product images live. Store persists raw
// uploaded content and returns a stable public URL; Delete removes the
// asset behind a previously issued URL. A missing asset is not a
// Delete error.
type AssetStore interface {
	Store(fileHeader *multipart.FileHeader) (string, error)
	Delete(url string) error
}

var assetStoreInstance AssetStore

// InitAssetStore initializes the asset store selected by configuration.
func InitAssetStore(cfg *config.Config) (AssetStore, error) {
	var (
		store AssetStore
		err   error
	)

	switch cfg.AssetStore {
	case config.AssetStoreLocal:
		store, err = NewLocalAssetStore(cfg.UploadDir)
	case config.AssetStoreS3:
		store, err = NewS3AssetStore(cfg)
	default:
		err = fmt.Errorf("unknown asset store backend %q", cfg.AssetStore)
	}
	if err != nil {
		return nil, err
	}

	assetStoreInstance = store
	return store, nil
}

// GetAssetStore returns the initialized asset store instance
func GetAssetStore() AssetStore {
	return assetStoreInstance
}

// SetAssetStore sets the asset store instance (primarily for testing)
func SetAssetStore(store AssetStore) {
	assetStoreInstance = store
}
