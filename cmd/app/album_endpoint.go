package main

import (
	"errors"
	"net/http"
	"strconv"

	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/middleware"
	"MediaStoreAPI/internal/model"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type albumRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	CoverURL    *string `json:"cover_url"`
	IsActive    *bool   `json:"is_active"`
}

func registerAlbumRoutes(g *echo.Group, as *services.AlbumService) {
	p := g.Group("/albums")

	p.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		albums, err := as.ListAlbums(c.Request().Context(), limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, albums)
	})

	p.GET("/:id", func(c echo.Context) error {
		album, err := as.GetAlbum(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, album)
	})

	// ============================
	// ADMIN MANAGEMENT
	// ============================
	admin := p.Group("")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.POST("", func(c echo.Context) error {
		req := new(albumRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		album := &model.Album{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Currency:    req.Currency,
			CoverURL:    req.CoverURL,
			IsActive:    true,
		}
		if req.IsActive != nil {
			album.IsActive = *req.IsActive
		}

		id, err := as.CreateAlbum(c.Request().Context(), album)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"album_id": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		req := new(albumRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		album := &model.Album{
			AlbumID:     c.Param("id"),
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Currency:    req.Currency,
			CoverURL:    req.CoverURL,
			IsActive:    true,
		}
		if req.IsActive != nil {
			album.IsActive = *req.IsActive
		}

		if err := as.UpdateAlbum(c.Request().Context(), album); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		if err := as.DeactivateAlbum(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "deactivated"})
	})
}
