package products

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
)

func TestSearchUsesServerQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "bolt m8", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","name":"Bolt M8","sku":"B-M8","category":{"_id":"c1","name":"Fasteners"},"price":0.25,"quantity":400}]}`))
	}))
	defer srv.Close()

	found, err := NewGateway(apiclient.New(apiclient.Options{BaseURL: srv.URL})).Search(context.Background(), " bolt m8 ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Fasteners", found[0].Category.Label())
	assert.Contains(t, Binding{}.SearchText(found[0]), "Fasteners")
}

func TestPayloadOmitsEmptyCategory(t *testing.T) {
	draft := Binding{}.Decode("", url.Values{"name": {"Nut"}, "sku": {"N1"}, "price": {"1,200.50"}, "quantity": {"3"}, "isActive": {"on"}})
	raw, err := json.Marshal(draft.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Nut","sku":"N1","price":1200.5,"quantity":3,"description":"","isActive":true}`, string(raw))

	draft.Category = "c1"
	raw, err = json.Marshal(draft.Payload())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category":"c1"`)
}

func TestDraftOfUsesCategoryID(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"p1","name":"Nut","category":{"_id":"c1","name":"Fasteners"},"__v":0}`), &p))
	draft := Binding{}.DraftOf(p)
	assert.Equal(t, "c1", draft.Category)
	assert.Equal(t, "0", draft.Rev.Token())
}

func TestLookupHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","name":"Bolt","sku":"B1","price":2,"quantity":5}]}`))
	}))
	defer srv.Close()

	h := NewLookupHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), apiclient.New(apiclient.Options{BaseURL: srv.URL}))
	sess := &shared.Session{ID: "s1"}
	sess.SetCredential("tok", "Ada")
	req := httptest.NewRequest(http.MethodGet, "/products/lookup?q=bolt", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[{"id":"p1","name":"Bolt","sku":"B1","price":2,"quantity":5}]}`, rec.Body.String())
}

func TestLookupHandlerUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	h := NewLookupHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), apiclient.New(apiclient.Options{BaseURL: srv.URL}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/lookup", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
