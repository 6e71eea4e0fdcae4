// Package checkout validates the cart and address, computes the final
// charge and hands the order off to the hosted payment page.
package checkout

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/cart"
	"github.com/PedroLucas003/virada-brewery-store/models"
)

// PreferenceCreator is the slice of the backend gateway the
// orchestrator needs: one payment-preference call, no retries.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, req models.CheckoutRequest) (string, error)
}

// AddressSource supplies the default shipping address for the
// current customer.
type AddressSource interface {
	DefaultAddress() models.Address
}

// Result is the outcome of a successful submission. InitPoint is the
// hosted payment page the application must navigate to; control does
// not return after that hand-off.
type Result struct {
	InitPoint string          `json:"init_point"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// Orchestrator composes the cart, the session's address defaults and
// the payment gateway. It never mutates either store directly beyond
// invoking their operations.
type Orchestrator struct {
	cart        *cart.Store
	session     AddressSource
	api         PreferenceCreator
	shippingFee decimal.Decimal
	logger      *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewOrchestrator(c *cart.Store, s AddressSource, api PreferenceCreator, shippingFee decimal.Decimal, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cart:        c,
		session:     s,
		api:         api,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// ShippingFee is the flat-rate charge added to every order. It is not
// derived from the address or the cart contents.
func (o *Orchestrator) ShippingFee() decimal.Decimal {
	return o.shippingFee
}

// FinalTotal is the current cart subtotal plus the flat shipping fee.
func (o *Orchestrator) FinalTotal() decimal.Decimal {
	return o.cart.TotalPrice().Add(o.shippingFee)
}

// DefaultAddress returns the address the checkout form should be
// prefilled with.
func (o *Orchestrator) DefaultAddress() models.Address {
	return o.session.DefaultAddress()
}

// Submit runs the checkout: preconditions first (no network call is
// made when one fails), then a single preference-creation call. On
// success the cart is cleared and the payment page URL returned; on
// failure the cart is left exactly as it was. A second submission
// while one is in flight is rejected.
func (o *Orchestrator) Submit(ctx context.Context, addr models.Address) (*Result, error) {
	if o.cart.Len() == 0 {
		return nil, apperrors.ErrEmptyCart
	}
	if !addr.Complete() {
		return nil, apperrors.ErrIncompleteAddress
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, apperrors.ErrCheckoutInFlight
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	// Snapshot the cart now; mutations after this point must not
	// affect the request in flight.
	items := o.cart.Items()
	subtotal := decimal.Zero
	req := models.CheckoutRequest{
		Items:           make([]models.CheckoutItem, 0, len(items)),
		ShippingAddress: addr,
	}
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
		req.Items = append(req.Items, models.CheckoutItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	initPoint, err := o.api.CreatePreference(ctx, req)
	if err != nil {
		o.logger.Warn("Checkout submission failed", zap.Error(err))
		return nil, err
	}

	// The cart is cleared as soon as the preference exists, before the
	// browser navigation is confirmed. If the navigation is blocked or
	// cancelled the cart contents are gone without a completed
	// payment; this mirrors the storefront's current behavior and is
	// tracked as an open product question.
	o.cart.Clear()

	total := subtotal.Add(o.shippingFee)
	o.logger.Info("Checkout submitted",
		zap.Int("items", len(req.Items)),
		zap.String("total", total.String()),
	)

	return &Result{
		InitPoint: initPoint,
		Subtotal:  subtotal,
		Shipping:  o.shippingFee,
		Total:     total,
	}, nil
}
