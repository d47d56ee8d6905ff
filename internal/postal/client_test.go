package postal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studereg/pkg/config"
	apperrors "studereg/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.PostalConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestLookupComposesAddress(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01001000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`)
	})

	addr, err := client.Lookup(context.Background(), "01001000")
	require.NoError(t, err)
	assert.Equal(t, "Praça da Sé - Sé - São Paulo/SP", addr.Format())
}

func TestLookupErrorBodyIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"erro": true}`)
	})

	_, err := client.Lookup(context.Background(), "00000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLookupNon200IsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Lookup(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLookupTransportFailureIsNotFound(t *testing.T) {
	client := NewClient(config.PostalConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	_, err := client.Lookup(context.Background(), "01001000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
