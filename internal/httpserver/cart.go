package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type removeFromCartRequest struct {
	LineID string `json:"line_id" binding:"required"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartPayload(cart))
	}
}

func addToCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("product_id and quantity required"))
			return
		}
		line, err := carts.Add(c.Request.Context(), currentUser(c).ID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartLinePayload(line))
	}
}

func setCartLineHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("quantity required"))
			return
		}
		line, err := carts.SetQuantity(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartLinePayload(line))
	}
}

func removeCartLineHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Remove(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeFromCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req removeFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.ValidationError("line_id required"))
			return
		}
		if err := carts.Remove(c.Request.Context(), currentUser(c).ID, req.LineID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), currentUser(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
