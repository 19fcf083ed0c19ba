package main

import (
	"net/http"

	"MediaStoreAPI/internal/middleware"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type verifyRequest struct {
	OrderTrackingID   string `json:"orderTrackingId"`
	MerchantReference string `json:"merchantReference"`
}

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// ============================
	// PESAPAL IPN CALLBACK
	// (NO JWT, must be public)
	// ============================
	// Pesapal delivers via GET and retries anything that is not a 200,
	// so this handler acknowledges receipt no matter what happened inside.
	ipnHandler := func(c echo.Context) error {
		n := services.IPNNotification{
			TrackingID:        c.QueryParam("OrderTrackingId"),
			MerchantReference: c.QueryParam("OrderMerchantReference"),
			NotificationType:  c.QueryParam("OrderNotificationType"),
		}

		if err := ps.HandleIPN(c.Request().Context(), n); err != nil {
			c.Logger().Errorf("ipn for %s: %v", n.MerchantReference, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"orderNotificationType":  n.NotificationType,
			"orderTrackingId":        n.TrackingID,
			"orderMerchantReference": n.MerchantReference,
			"status":                 "200",
		})
	}
	p.GET("/ipn", ipnHandler)

	// ============================
	// STATUS VERIFICATION (polling)
	// ============================
	verifyHandler := func(c echo.Context) error {
		trackingID := c.QueryParam("orderTrackingId")
		merchantRef := c.QueryParam("merchantReference")

		if c.Request().Method == http.MethodPost {
			req := new(verifyRequest)
			if err := c.Bind(req); err == nil {
				if trackingID == "" {
					trackingID = req.OrderTrackingID
				}
				if merchantRef == "" {
					merchantRef = req.MerchantReference
				}
			}
		}

		res, err := ps.VerifyTransaction(c.Request().Context(), trackingID, merchantRef)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, res)
	}
	p.GET("/verify", verifyHandler)
	p.POST("/verify", verifyHandler)

	// ============================
	// ONE-TIME IPN REGISTRATION
	// (admin)
	// ============================
	p.POST("/register-ipn", func(c echo.Context) error {
		res, err := ps.RegisterIPN(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, res)
	}, middleware.JWTMiddleware(), middleware.AdminOnly)
}
