package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type bulkStatusRequest struct {
	IDs    []string           `json:"ids" binding:"required"`
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func checkoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := checkout.Checkout(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toOrderPayload(order))
	}
}

func listOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		payload := make([]orderPayload, 0, len(result))
		for i := range result {
			payload = append(payload, toOrderPayload(&result[i]))
		}
		c.JSON(http.StatusOK, payload)
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), currentUser(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderPayload(order))
	}
}

func updateOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("status required"))
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderPayload(order))
	}
}

func bulkUpdateOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("ids and status required"))
			return
		}
		updated, err := orders.BulkUpdateStatus(c.Request.Context(), req.IDs, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

func bulkDeleteOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("ids required"))
			return
		}
		deleted, err := orders.BulkDelete(c.Request.Context(), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

func statsHandler(stats StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := stats.Summarize(c.Request.Context(), c.Query("period"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
