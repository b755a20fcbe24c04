package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/notify"
	"backend/internal/service"
	"backend/internal/store"
)

/* =========================
   REQUEST DTOs
========================= */

type cartItemRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity int    `json:"quantity"`
	Sugar    string `json:"sugar"`
}

type createOrdersRequest struct {
	Name     string            `json:"name"`
	Contact  string            `json:"contact"`
	TimeSlot string            `json:"timeSlot" binding:"required"`
	Items    []cartItemRequest `json:"items" binding:"required,dive"`
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

// storeContext bounds every store call with the configured request timeout.
func storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := config.AppEnv.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

/* =========================
   CREATE ORDERS
========================= */

func CreateOrders(orders store.OrderStore, customers store.CustomerStore, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/client/:customerId"
		defer handlePanic(c, route)

		customerID := strings.TrimSpace(c.Param("customerId"))
		if customerID == "" {
			respondWithError(c, http.StatusBadRequest, route, "customerId is required")
			return
		}

		var req createOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		slot, err := models.ToSlot(req.TimeSlot)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "timeSlot must be one of morning, afternoon")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		// Blank name falls back to the stored profile; profile trouble must
		// not block the order itself.
		name := strings.TrimSpace(req.Name)
		contact := strings.TrimSpace(req.Contact)
		if name == "" {
			profile, err := customers.GetProfile(ctx, customerID)
			if err != nil {
				log.Printf("[%s] [WARN] profile lookup failed: %v", route, err)
			} else {
				name = profile.Name
				if contact == "" {
					contact = profile.Email
				}
			}
		}

		items := make([]models.CartItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.CartItem{
				Item:     item.Item,
				Quantity: item.Quantity,
				Sugar:    item.Sugar,
			})
		}

		created, err := orders.CreateOrders(ctx, customerID, name, contact, slot, items)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		go notifier.OrderPlaced(context.WithoutCancel(c.Request.Context()), created)

		log.Printf("[%s] [INFO] %d order line(s) created for customer %s", route, len(created), customerID)
		c.JSON(http.StatusCreated, gin.H{
			"created": len(created),
			"orders":  created,
			"message": "order placed",
		})
	}
}

/* =========================
   CHEF DASHBOARD
========================= */

func GetAggregatedOrders(aggregator *service.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/aggregated"
		defer handlePanic(c, route)

		var slots []models.Slot
		if raw := strings.TrimSpace(c.Query("slots")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				slot, err := models.ToSlot(part)
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "unknown slot: "+part)
					return
				}
				slots = append(slots, slot)
			}
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		groups, err := aggregator.Aggregated(ctx, slots)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, groups)
	}
}

func GetOrderDetail(aggregator *service.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/detail"
		defer handlePanic(c, route)

		ctx, cancel := storeContext(c)
		defer cancel()

		lines, err := aggregator.Detail(ctx, c.Query("item"), c.Query("timeSlot"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, lines)
	}
}

/* =========================
   STATUS TRANSITIONS
========================= */

func UpdateOrderStatus(transitioner *service.Transitioner, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/status"
		defer handlePanic(c, route)

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "newStatus is required")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		line, err := transitioner.Set(ctx, c.Param("orderId"), req.NewStatus)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		go notifier.StatusChanged(context.WithoutCancel(c.Request.Context()), line)

		log.Printf("[%s] [INFO] order %s moved to %s", route, line.ID, line.Status)
		c.JSON(http.StatusOK, line)
	}
}

func AdvanceOrder(transitioner *service.Transitioner, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/:orderId/advance"
		defer handlePanic(c, route)

		ctx, cancel := storeContext(c)
		defer cancel()

		line, err := transitioner.Advance(ctx, c.Param("orderId"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		go notifier.StatusChanged(context.WithoutCancel(c.Request.Context()), line)

		log.Printf("[%s] [INFO] order %s advanced to %s", route, line.ID, line.Status)
		c.JSON(http.StatusOK, line)
	}
}

/* =========================
   CUSTOMER ORDER HISTORY
========================= */

func GetCustomerOrders(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/customer/:customerId"
		defer handlePanic(c, route)

		customerID := strings.TrimSpace(c.Param("customerId"))
		if customerID == "" {
			respondWithError(c, http.StatusBadRequest, route, "customerId is required")
			return
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		lines, err := orders.Query(ctx, store.OrderFilter{CustomerID: customerID})
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		// The store returns oldest first; customers want their latest order
		// on top.
		c.JSON(http.StatusOK, lo.Reverse(lines))
	}
}

/* =========================
   HEALTH
========================= */

func Health(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"

		ctx, cancel := storeContext(c)
		defer cancel()

		if err := orders.Ping(ctx); err != nil {
			respondStoreError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
