// Package gateway is the typed HTTP client for the storefront backend.
// Every request carries the stored credential token as a bearer header
// when one is present; any unauthorized response fires the registered
// global handler in addition to surfacing an authorization error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/models"
	"github.com/PedroLucas003/virada-brewery-store/tokenstore"
)

type Client struct {
	baseURL        string
	client         *http.Client
	tokens         tokenstore.Store
	logger         *zap.Logger
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration, tokens tokenstore.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// SetUnauthorizedHandler registers the global handler invoked on any
// unauthorized backend response, regardless of which call produced it.
func (g *Client) SetUnauthorizedHandler(fn func()) {
	g.onUnauthorized = fn
}

// wire envelopes

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type validateResponse struct {
	Valid bool         `json:"valid"`
	User  *models.User `json:"user,omitempty"`
}

type preferenceResponse struct {
	InitPoint string `json:"init_point"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login authenticates the customer and returns the issued token plus
// the customer profile.
func (g *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// Register creates an account and returns the issued token plus the
// new profile. The payload must not carry a confirmation password.
func (g *Client) Register(ctx context.Context, payload models.RegisterPayload) (string, *models.User, error) {
	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/api/auth/register", payload, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// ValidateToken asks the backend whether the stored token still maps
// to a live session.
func (g *Client) ValidateToken(ctx context.Context) (bool, *models.User, error) {
	var resp validateResponse
	if err := g.do(ctx, http.MethodGet, "/api/auth/validate", nil, &resp); err != nil {
		return false, nil, err
	}
	return resp.Valid, resp.User, nil
}

// UpdateProfile patches the given user's profile and returns the
// updated record.
func (g *Client) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := g.do(ctx, http.MethodPut, "/api/auth/"+userID, patch, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CreatePreference submits the checkout snapshot and returns the
// hosted payment page URL.
func (g *Client) CreatePreference(ctx context.Context, req models.CheckoutRequest) (string, error) {
	var resp preferenceResponse
	if err := g.do(ctx, http.MethodPost, "/api/payments/create-preference", req, &resp); err != nil {
		return "", err
	}
	return resp.InitPoint, nil
}

// PublicProducts lists the public catalog.
func (g *Client) PublicProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := g.do(ctx, http.MethodGet, "/api/products/public", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MyOrders lists the authenticated customer's orders.
func (g *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := g.do(ctx, http.MethodGet, "/api/orders/myorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders lists every order. Admin only; authorization is the
// backend's call.
func (g *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := g.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. Transition legality is not
// checked here; the backend owns that decision.
func (g *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	body := map[string]string{"status": status}
	var order models.Order
	if err := g.do(ctx, http.MethodPatch, "/api/orders/"+orderID, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// do executes one JSON round trip and maps the response onto the
// error taxonomy: network failure -> transport, 401 -> authorization
// (plus the global handler), other >=400 -> backend with the
// backend-provided message when the body carries one.
func (g *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Backend(http.StatusInternalServerError, "Failed to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return apperrors.Transport(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, err := g.tokens.Get(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperrors.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		msg := backendMessage(resp.Body)
		if g.onUnauthorized != nil {
			g.onUnauthorized()
		}
		return apperrors.Authorization(msg, nil)
	}

	if resp.StatusCode >= 400 {
		msg := backendMessage(resp.Body)
		g.logger.Warn("Backend returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apperrors.Backend(resp.StatusCode, msg, fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Backend(resp.StatusCode, "Malformed backend response", err)
		}
	}
	return nil
}

// backendMessage pulls the optional human-readable message out of an
// error body.
func backendMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	var e errorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Message
}
