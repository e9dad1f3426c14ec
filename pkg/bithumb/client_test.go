package bithumb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bithumbkit/pkg/core"
)

// newTestClient builds a client against a fake server. When withCreds is
// false the client can only reach public endpoints.
func newTestClient(t *testing.T, handler http.HandlerFunc, withCreds bool) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := core.DefaultConfig().
		WithBaseURL(server.URL).
		WithTimeout(5 * time.Second)
	if withCreds {
		config.WithCredentials(&core.Credentials{
			AccessKey: testAccessKey,
			SecretKey: testSecretKey,
		})
	}

	client, err := New(config)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestNew_ValidConfig(t *testing.T) {
	client, err := New(core.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestNew_InvalidConfig(t *testing.T) {
	client, err := New(&core.Config{})
	require.Error(t, err)
	require.Nil(t, client)
}

func TestClient_UnsignedGet_NoAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}, true)

	_, err := client.get(context.Background(), "/v1/ticker", core.Params{"markets": "KRW-BTC"}, false)
	assert.NoError(t, err)
}

func TestClient_SignedGet_BearerHeaderAndQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "Bearer "))
		assert.Equal(t, "wait", r.URL.Query().Get("state"))
		w.Write([]byte(`[]`))
	}, true)

	_, err := client.get(context.Background(), "/v1/orders", core.Params{"state": "wait"}, true)
	assert.NoError(t, err)
}

func TestClient_SignedGet_NoCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server")
	}, false)

	_, err := client.get(context.Background(), "/v1/accounts", nil, true)
	assert.ErrorIs(t, err, core.ErrNoCredentials)
}

func TestClient_StatusError_Authentication(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"name":"invalid_access_key","message":"Invalid access key."}}`))
	}, true)

	_, err := client.get(context.Background(), "/v1/accounts", nil, true)
	require.Error(t, err)
	assert.True(t, core.IsAuthenticationError(err))

	var exErr *core.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "invalid_access_key", exErr.Code)
	assert.Equal(t, "Invalid access key.", exErr.Message)
	assert.Equal(t, http.StatusUnauthorized, exErr.StatusCode)
}

func TestClient_StatusError_NumericName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"name":400,"message":"주문수량 단위를 확인해주세요."}}`))
	}, true)

	_, err := client.post(context.Background(), "/v1/orders", core.Params{"market": "KRW-BTC"})
	require.Error(t, err)

	var exErr *core.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, core.ErrorTypeBadRequest, exErr.Type)
	assert.Equal(t, "400", exErr.Code)
}

func TestClient_StatusError_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, true)

	_, err := client.get(context.Background(), "/v1/accounts", nil, true)
	require.Error(t, err)

	var exErr *core.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, core.ErrorTypeServerError, exErr.Type)
}

func TestClient_StatusError_RateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, true)

	_, err := client.get(context.Background(), "/v1/accounts", nil, true)
	require.Error(t, err)

	var exErr *core.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, core.ErrorTypeRateLimit, exErr.Type)
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	config := core.DefaultConfig().WithBaseURL(serverURL)
	client, err := New(config)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.get(context.Background(), "/v1/ticker", nil, false)
	require.Error(t, err)
	assert.True(t, core.IsNetworkError(err))
}

func TestMapStatusCode(t *testing.T) {
	assert.Equal(t, core.ErrorTypeAuthentication, mapStatusCode(http.StatusUnauthorized))
	assert.Equal(t, core.ErrorTypeAuthentication, mapStatusCode(http.StatusForbidden))
	assert.Equal(t, core.ErrorTypeNotFound, mapStatusCode(http.StatusNotFound))
	assert.Equal(t, core.ErrorTypeRateLimit, mapStatusCode(http.StatusTooManyRequests))
	assert.Equal(t, core.ErrorTypeServerError, mapStatusCode(http.StatusBadGateway))
	assert.Equal(t, core.ErrorTypeBadRequest, mapStatusCode(http.StatusBadRequest))
}
