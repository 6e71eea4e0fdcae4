package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/gateway"
)

// OrdersController proxies the read-only order views and the admin
// status update. Order state lives in the backend; nothing is cached
// here.
type OrdersController struct {
	API *gateway.Client
}

func NewOrdersController(api *gateway.Client) *OrdersController {
	return &OrdersController{API: api}
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// MyOrders lists the current customer's orders.
func (oc *OrdersController) MyOrders(c *gin.Context) {
	orders, err := oc.API.MyOrders(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AllOrders lists every order for the admin view.
func (oc *OrdersController) AllOrders(c *gin.Context) {
	orders, err := oc.API.AllOrders(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus sets an order's status. Only known status values are
// accepted; transition legality is the backend's concern.
func (oc *OrdersController) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("A valid order status is required"))
		return
	}

	order, err := oc.API.UpdateOrderStatus(c.Request.Context(), c.Param("order_id"), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
