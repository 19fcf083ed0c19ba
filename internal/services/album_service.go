package services

import (
	"context"
	"strings"

	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/model"
	"MediaStoreAPI/internal/repository"
)

type AlbumService struct {
	Repo *repository.AlbumRepository
}

func NewAlbumService(r *repository.AlbumRepository) *AlbumService {
	return &AlbumService{Repo: r}
}

func (s *AlbumService) CreateAlbum(ctx context.Context, a *model.Album) (string, error) {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return "", apperr.Validationf("title is required")
	}
	if a.Price < 0 {
		return "", apperr.Validationf("price must be >= 0")
	}
	if a.Currency == "" {
		a.Currency = "KES"
	}
	return s.Repo.Create(ctx, a)
}

func (s *AlbumService) GetAlbum(ctx context.Context, id string) (*model.Album, error) {
	album, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("load album", err)
	}
	if album == nil {
		return nil, apperr.NotFoundf("album not found")
	}
	return album, nil
}

func (s *AlbumService) ListAlbums(ctx context.Context, limit, offset int) ([]model.Album, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListActive(ctx, limit, offset)
}

func (s *AlbumService) UpdateAlbum(ctx context.Context, a *model.Album) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.AlbumID == "" {
		return apperr.Validationf("album id is required")
	}
	if a.Title == "" {
		return apperr.Validationf("title is required")
	}
	if a.Price < 0 {
		return apperr.Validationf("price must be >= 0")
	}
	return s.Repo.Update(ctx, a)
}

func (s *AlbumService) DeactivateAlbum(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validationf("album id is required")
	}
	return s.Repo.Deactivate(ctx, id)
}
