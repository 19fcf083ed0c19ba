package main

import (
	"errors"
	"net/http"

	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/middleware"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerLibraryRoutes(g *echo.Group, ls *services.LibraryService) {
	p := g.Group("/my/albums")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		albums, err := ls.ListOwned(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, albums)
	})

	// Premium-content gate: the player checks access before streaming.
	p.GET("/:id/access", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		owns, err := ls.HasAccess(c.Request().Context(), cl.AuthID, c.Param("id"))
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"has_access": owns})
	})
}
