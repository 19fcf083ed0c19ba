package services

import (
	"context"

	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/model"
	"MediaStoreAPI/internal/repository"
)

// LibraryService answers "which albums does this user own" for the
// premium-content gate.
type LibraryService struct {
	Owned  *repository.CustomerAlbumsRepository
	Albums *repository.AlbumRepository
}

func NewLibraryService(owned *repository.CustomerAlbumsRepository, albums *repository.AlbumRepository) *LibraryService {
	return &LibraryService{Owned: owned, Albums: albums}
}

func (s *LibraryService) ListOwned(ctx context.Context, authID int64) ([]model.Album, error) {
	return s.Owned.ListOwned(ctx, authID)
}

func (s *LibraryService) HasAccess(ctx context.Context, authID int64, albumID string) (bool, error) {
	album, err := s.Albums.GetByID(ctx, albumID)
	if err != nil {
		return false, apperr.Persistence("load album", err)
	}
	if album == nil {
		return false, apperr.NotFoundf("album not found")
	}
	return s.Owned.Owns(ctx, authID, albumID)
}
