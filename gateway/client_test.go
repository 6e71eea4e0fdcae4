package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/gateway"
	"github.com/PedroLucas003/virada-brewery-store/models"
	"github.com/PedroLucas003/virada-brewery-store/session"
	"github.com/PedroLucas003/virada-brewery-store/tokenstore"
)

func newClient(t *testing.T, handler http.Handler) (*gateway.Client, *tokenstore.Memory) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := tokenstore.NewMemory()
	logger, _ := zap.NewDevelopment()
	return gateway.NewClient(srv.URL, 2*time.Second, tokens, logger), tokens
}

func TestLogin_ParsesTokenAndUser(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "pedro@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "issued-token",
			"user":  models.User{ID: "u1", Email: "pedro@example.com"},
		})
	}))

	token, user, err := client.Login(context.Background(), "pedro@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "u1", user.ID)
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	client, tokens := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"valid": true, "user": models.User{ID: "u1"}})
	}))

	// Without a token no header is sent.
	_, _, err := client.ValidateToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "", gotAuth)

	_ = tokens.Set(context.Background(), "stored-token")
	_, _, err = client.ValidateToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Out of stock"})
	}))

	_, err := client.CreatePreference(context.Background(), models.CheckoutRequest{})

	assert.Error(t, err)
	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindBackend, appErr.Kind)
	assert.Equal(t, "Out of stock", appErr.Message)
}

func TestBackendErrorWithoutMessageGetsFallback(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.MyOrders(context.Background())

	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindBackend, appErr.Kind)
	assert.Equal(t, "Request failed", appErr.Message)
}

func TestTransportError(t *testing.T) {
	tokens := tokenstore.NewMemory()
	logger, _ := zap.NewDevelopment()
	// Nothing listens on this address.
	client := gateway.NewClient("http://127.0.0.1:1", 200*time.Millisecond, tokens, logger)

	_, err := client.PublicProducts(context.Background())

	assert.True(t, apperrors.Is(err, apperrors.KindTransport))
}

func TestUnauthorizedFiresGlobalHandler(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	}))

	fired := 0
	client.SetUnauthorizedHandler(func() { fired++ })

	_, err := client.MyOrders(context.Background())

	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	assert.Equal(t, "Token expired", apperrors.From(err).Message)
	assert.Equal(t, 1, fired, "handler fires exactly once per response")
}

// An unauthorized response from any call must force the session back
// to anonymous and drop the stored token.
func TestUnauthorizedForcesLogout(t *testing.T) {
	authorized := true
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok",
			"user":  models.User{ID: "u1"},
		})
	})
	mux.HandleFunc("/api/orders/myorders", func(w http.ResponseWriter, r *http.Request) {
		if !authorized {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Order{})
	})

	client, tokens := newClient(t, mux)
	logger, _ := zap.NewDevelopment()
	mgr := session.NewManager(tokens, client, logger)
	client.SetUnauthorizedHandler(mgr.HandleUnauthorized)

	_, err := mgr.Login(context.Background(), "pedro@example.com", "secret1")
	assert.NoError(t, err)
	assert.True(t, mgr.IsAuthenticated())

	authorized = false
	_, err = client.MyOrders(context.Background())

	assert.True(t, apperrors.Is(err, apperrors.KindAuthorization))
	assert.False(t, mgr.IsAuthenticated())
	token, _ := tokens.Get(context.Background())
	assert.Equal(t, "", token)
}

func TestCreatePreference_ReturnsInitPoint(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/create-preference", r.URL.Path)

		var req models.CheckoutRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Len(t, req.Items, 1)
		assert.Equal(t, "Recife", req.ShippingAddress.City)

		_ = json.NewEncoder(w).Encode(map[string]string{"init_point": "https://payments.example/pref/9"})
	}))

	initPoint, err := client.CreatePreference(context.Background(), models.CheckoutRequest{
		Items:           []models.CheckoutItem{{ProductID: "a", Name: "IPA", Quantity: 1}},
		ShippingAddress: models.Address{PostalCode: "50000-000", Street: "Rua A, 10", City: "Recife", State: "PE"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://payments.example/pref/9", initPoint)
}
