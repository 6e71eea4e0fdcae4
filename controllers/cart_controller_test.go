package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/cart"
)

func newCartRouter(store *cart.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(apperrors.ErrorMiddleware())

	cc := NewCartController(store)
	router.GET("/cart", cc.Get)
	router.POST("/cart/items", cc.AddItem)
	router.PUT("/cart/items/:product_id", cc.UpdateQuantity)
	router.DELETE("/cart/items/:product_id", cc.RemoveItem)
	router.DELETE("/cart", cc.Clear)
	return router
}

func TestAddItemEndpoint(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store)

	payload := `{"product_id": "b1", "name": "IPA", "unit_price": "10.00"}`
	req, _ := http.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, store.TotalItems())

	var resp struct {
		TotalItems int `json:"total_items"`
	}
	_ = json.Unmarshal(recorder.Body.Bytes(), &resp)
	assert.Equal(t, 1, resp.TotalItems)
}

func TestAddItemEndpoint_MissingFields(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store)

	payload := `{"unit_price": "10.00"}`
	req, _ := http.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 0, store.Len())
}

func TestUpdateQuantityEndpoint_ZeroRemoves(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store)

	add := `{"product_id": "b1", "name": "IPA", "unit_price": "10.00"}`
	req, _ := http.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(add))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest(http.MethodPut, "/cart/items/b1", bytes.NewBufferString(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, store.Len())
}

func TestClearEndpoint(t *testing.T) {
	store := cart.NewStore()
	router := newCartRouter(store)

	add := `{"product_id": "b1", "name": "IPA", "unit_price": "10.00"}`
	req, _ := http.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(add))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest(http.MethodDelete, "/cart", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, store.Len())
}
