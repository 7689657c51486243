package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/rest"
)

func TestClient_EnviaCabecerasYCuerpo(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	c := rest.NewClient(srv.URL+"/api/", 5*time.Second, nil)
	resp, err := c.Do(context.Background(), ports.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/bodegas",
		Body:   map[string]any{"nombre": "Central"},
		Token:  "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"id":7}`, string(resp.Body))

	assert.Equal(t, "/api/bodegas", got.URL.Path, "la barra final de la URL base se ignora")
	assert.Equal(t, "Bearer abc", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Equal(t, "Central", body["nombre"])
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	var auth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	resp, err := rest.NewClient(srv.URL, time.Second, nil).Do(context.Background(), ports.HTTPRequest{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err, "un 401 es una respuesta, no un error de transporte")
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Empty(t, auth)
	assert.False(t, hasAuth)
}

func TestClient_ServidorCaidoEsErrorDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := rest.NewClient(url, time.Second, nil).Do(context.Background(), ports.HTTPRequest{Method: http.MethodGet, Path: "/bodegas"})
	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "/bodegas", tErr.Path)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_CuerpoNoSerializable(t *testing.T) {
	c := rest.NewClient("http://localhost", time.Second, nil)
	_, err := c.Do(context.Background(), ports.HTTPRequest{Method: http.MethodPost, Path: "/x", Body: make(chan int)})
	assert.Error(t, err)
}
