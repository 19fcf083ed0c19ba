package main

import (
	"net/http"

	"MediaStoreAPI/internal/middleware"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	p := g.Group("/auth")

	p.POST("/signup", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		id, err := authSvc.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusCreated, echo.Map{"authid": id})
	})

	p.POST("/login", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid credentials",
			})
		}

		token, err := middleware.GenerateToken(user.AuthID, user.Email, user.Role, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"authid":     user.AuthID,
				"email":      user.Email,
				"role":       user.Role,
				"created_at": user.CreatedAt,
			},
		})
	})

	p.GET("/me", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "unauthenticated",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"authid": cl.AuthID,
			"email":  cl.Email,
			"role":   cl.Role,
		})
	}, middleware.JWTMiddleware())
}
