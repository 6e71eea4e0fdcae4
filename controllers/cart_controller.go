package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/cart"
	"github.com/PedroLucas003/virada-brewery-store/models"
)

type CartController struct {
	Cart *cart.Store
}

func NewCartController(c *cart.Store) *CartController {
	return &CartController{Cart: c}
}

type addItemRequest struct {
	ProductID      string          `json:"product_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Image          string          `json:"image"`
	AlcoholContent float64         `json:"alcohol_content"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get returns the current cart with its derived totals.
func (cc *CartController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":       cc.Cart.Items(),
		"total_items": cc.Cart.TotalItems(),
		"total_price": cc.Cart.TotalPrice(),
	})
}

// AddItem puts one unit of a product in the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("Product id and name are required"))
		return
	}
	if req.UnitPrice.IsNegative() {
		_ = c.Error(apperrors.Validation("Unit price must not be negative"))
		return
	}

	cc.Cart.AddItem(models.Product{
		ID:             req.ProductID,
		Name:           req.Name,
		UnitPrice:      req.UnitPrice,
		Image:          req.Image,
		AlcoholContent: req.AlcoholContent,
	})

	cc.Get(c)
}

// UpdateQuantity sets an absolute quantity; zero or below removes the
// line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	productID := c.Param("product_id")

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("Quantity is required"))
		return
	}

	cc.Cart.UpdateQuantity(productID, req.Quantity)
	cc.Get(c)
}

// RemoveItem deletes a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	cc.Cart.RemoveItem(c.Param("product_id"))
	cc.Get(c)
}

// Clear empties the cart.
func (cc *CartController) Clear(c *gin.Context) {
	cc.Cart.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
