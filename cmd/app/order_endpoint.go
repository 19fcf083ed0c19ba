package main

import (
	"net/http"

	"MediaStoreAPI/internal/middleware"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	AlbumID           string `json:"album_id"`
	CustomerEmail     string `json:"customer_email"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CallbackURL       string `json:"callback_url"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")

	// Public checkout: a valid bearer token ties the order to the buyer's
	// account, but guests can purchase too.
	p.POST("", func(c echo.Context) error {
		req := new(createOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "invalid request",
			})
		}

		in := services.CreateOrderInput{
			AlbumID:           req.AlbumID,
			CustomerEmail:     req.CustomerEmail,
			CustomerFirstName: req.CustomerFirstName,
			CustomerLastName:  req.CustomerLastName,
			CallbackURL:       req.CallbackURL,
		}
		if cl := middleware.TryGetClaims(c); cl != nil {
			in.UserID = &cl.AuthID
		}

		res, err := os.CreateOrder(c.Request().Context(), in)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, res)
	})
}
