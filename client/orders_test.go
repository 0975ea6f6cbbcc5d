package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrderList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"BareArray", `[{"uuid":"o-1"},{"uuid":"o-2"}]`, 2},
		{"DataEnvelope", `{"data":[{"uuid":"o-1"}]}`, 1},
		{"OrdersEnvelope", `{"orders":[{"uuid":"o-1"}]}`, 1},
		{"EmptyDataEnvelope", `{"data":[]}`, 0},
		{"EmptyArray", `[]`, 0},
		{"GarbageObject", `{"surprise":true}`, 0},
		{"GarbageScalar", `42`, 0},
		{"Null", `null`, 0},
		{"NullDataEnvelope", `{"data":null}`, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := normalizeOrderList(json.RawMessage(tc.raw))
			require.NotNil(t, res)
			assert.Len(t, res, tc.want)
		})
	}
}

func TestClient_ListOrders(t *testing.T) {
	t.Run("DataEnvelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/stores/3/orders", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[{"uuid":"o-1","status":"pending"}]}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "tok")
		orders, err := c.ListOrders(context.Background(), 3, "")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, OrderPending, orders[0].Status)
	})

	t.Run("BareArray", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"uuid":"o-1"},{"uuid":"o-2"}]`))
		}))
		defer srv.Close()

		orders, err := New(srv.URL, "tok").ListOrders(context.Background(), 3, "")
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("StatusFilterOnQuery", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "shipped", r.URL.Query().Get("status"))
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		orders, err := New(srv.URL, "tok").ListOrders(context.Background(), 3, OrderShipped)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("GarbagePayloadYieldsEmptyList", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"maintenance"}`))
		}))
		defer srv.Close()

		orders, err := New(srv.URL, "tok").ListOrders(context.Background(), 3, "")
		require.NoError(t, err)
		require.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "").ListOrders(context.Background(), 3, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestClient_GetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/orders/o-1", r.URL.Path)
			w.Write([]byte(`{"uuid":"o-1","status":"processing","total_amount":150}`))
		}))
		defer srv.Close()

		o, err := New(srv.URL, "tok").GetOrder(context.Background(), "o-1")
		require.NoError(t, err)
		assert.Equal(t, OrderProcessing, o.Status)
		assert.Equal(t, 150.0, o.TotalAmount)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"order not found"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "tok").GetOrder(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	t.Run("PatchesChangedFieldsOnly", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/v2/orders/o-1/status", r.URL.Path)

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, map[string]interface{}{"status": "shipped"}, got)

			w.Write([]byte(`{"uuid":"o-1","status":"shipped"}`))
		}))
		defer srv.Close()

		status := OrderShipped
		o, err := New(srv.URL, "tok").UpdateOrderStatus(context.Background(), "o-1",
			OrderStatusUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, OrderShipped, o.Status)
	})

	t.Run("EmptyPatchSkipsWrite", func(t *testing.T) {
		var patched bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPatch {
				patched = true
			}
			w.Write([]byte(`{"uuid":"o-1","status":"pending"}`))
		}))
		defer srv.Close()

		o, err := New(srv.URL, "tok").UpdateOrderStatus(context.Background(), "o-1", OrderStatusUpdate{})
		require.NoError(t, err)
		assert.Equal(t, OrderPending, o.Status)
		assert.False(t, patched)
	})

	t.Run("ValidationError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"unknown status value"}`))
		}))
		defer srv.Close()

		bad := OrderStatus("express")
		_, err := New(srv.URL, "tok").UpdateOrderStatus(context.Background(), "o-1",
			OrderStatusUpdate{Status: &bad})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
