package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

type updatePreferencesRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	DefaultDrink    string `json:"defaultDrink" binding:"required"`
	DefaultSugar    string `json:"defaultSugar" binding:"required"`
	DefaultQuantity int    `json:"defaultQuantity"`
}

// GetCustomerProfile returns the profile, seeding it with café defaults on
// first access so the ordering screen always has something to pre-fill.
func GetCustomerProfile(customers store.CustomerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /customers/:customerId/profile"
		defer handlePanic(c, route)

		ctx, cancel := storeContext(c)
		defer cancel()

		profile, err := customers.GetProfile(ctx, strings.TrimSpace(c.Param("customerId")))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func UpdateCustomerPreferences(customers store.CustomerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /customers/:customerId/preferences"
		defer handlePanic(c, route)

		var req updatePreferencesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "all preference fields are required")
			return
		}

		if req.DefaultQuantity == 0 {
			req.DefaultQuantity = 1
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		profile, err := customers.UpdatePreferences(
			ctx,
			strings.TrimSpace(c.Param("customerId")),
			req.Name,
			req.Email,
			models.Preferences{
				DefaultDrink:    req.DefaultDrink,
				DefaultSugar:    req.DefaultSugar,
				DefaultQuantity: req.DefaultQuantity,
			},
		)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		log.Printf("[%s] [INFO] preferences updated for customer %s", route, profile.CustomerID)
		c.JSON(http.StatusOK, gin.H{
			"message":  "preferences updated",
			"customer": profile,
		})
	}
}
