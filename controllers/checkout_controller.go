package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/checkout"
	"github.com/PedroLucas003/virada-brewery-store/models"
)

type CheckoutController struct {
	Checkout *checkout.Orchestrator
}

func NewCheckoutController(o *checkout.Orchestrator) *CheckoutController {
	return &CheckoutController{Checkout: o}
}

type submitRequest struct {
	ShippingAddress *models.Address `json:"shipping_address"`
}

// Quote returns the prefill address and the charge the customer is
// about to confirm.
func (cc *CheckoutController) Quote(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"shipping_address": cc.Checkout.DefaultAddress(),
		"shipping_fee":     cc.Checkout.ShippingFee(),
		"total":            cc.Checkout.FinalTotal(),
	})
}

// Submit runs the checkout and returns the payment page URL. The
// response always carries the redirect target, so a completed
// checkout still routes correctly even if the view that started it is
// gone.
func (cc *CheckoutController) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("Invalid checkout payload"))
		return
	}

	addr := cc.Checkout.DefaultAddress()
	if req.ShippingAddress != nil {
		addr = *req.ShippingAddress
	}

	result, err := cc.Checkout.Submit(c.Request.Context(), addr)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
