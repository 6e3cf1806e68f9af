package domain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

type fakeFetcher struct {
	body  string
	err   error
	calls int
}

func (f *fakeFetcher) GetJSON(_ context.Context, _ string, out any) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	dec := json.NewDecoder(strings.NewReader(f.body))
	dec.UseNumber()
	return dec.Decode(out)
}

type fakePoster struct {
	urls   []string
	bodies []any
}

func (f *fakePoster) PostJSON(_ context.Context, url string, body any) outbound.Outcome {
	f.urls = append(f.urls, url)
	f.bodies = append(f.bodies, body)
	return outbound.Outcome{Kind: outbound.KindDelivered, StatusCode: http.StatusOK}
}

func validatedProduct(t *testing.T, price, quantity string) *Product {
	t.Helper()
	q := decimal.RequireFromString(quantity)
	return newTestProduct(t, NewProductInput{
		UnitPrice:     decimal.RequireFromString(price),
		Quantity:      &q,
		ValidationURL: strPtr("https://stock.example.com/check"),
	})
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("no validation url is valid without a call", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{})
		f := &fakeFetcher{}

		ok, err := p.Validate(ctx, f)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, f.calls)
	})

	t.Run("matching price and enough stock", func(t *testing.T) {
		ok, err := validatedProduct(t, "9.99", "3").Validate(ctx, &fakeFetcher{body: `{"price": 9.99, "stock_quantity": 5}`})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("matching price and insufficient stock", func(t *testing.T) {
		ok, err := validatedProduct(t, "9.99", "10").Validate(ctx, &fakeFetcher{body: `{"price": 9.99, "stock_quantity": 5}`})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stock equal to quantity is enough", func(t *testing.T) {
		ok, err := validatedProduct(t, "9.99", "5").Validate(ctx, &fakeFetcher{body: `{"stock_quantity": "5.0"}`})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("price drift is invalid regardless of stock", func(t *testing.T) {
		for _, qty := range []string{"1", "3", "10"} {
			ok, err := validatedProduct(t, "9.99", qty).Validate(ctx, &fakeFetcher{body: `{"price": 8.00}`})
			require.NoError(t, err)
			assert.False(t, ok, "quantity %s", qty)
		}
	})

	t.Run("price compared exactly across representations", func(t *testing.T) {
		ok, err := validatedProduct(t, "10.50", "1").Validate(ctx, &fakeFetcher{body: `{"price": {"$numberDecimal": "10.5"}}`})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no stock information is valid", func(t *testing.T) {
		ok, err := validatedProduct(t, "9.99", "1000").Validate(ctx, &fakeFetcher{body: `{"price": "9.99", "stock_quantity": null}`})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unreachable validator is an error, not a verdict", func(t *testing.T) {
		ok, err := validatedProduct(t, "9.99", "1").Validate(ctx, &fakeFetcher{err: outbound.ErrUnreachable})
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		assert.ErrorIs(t, err, outbound.ErrUnreachable)
		assert.False(t, ok)
	})

	t.Run("non-numeric stock is an error", func(t *testing.T) {
		_, err := validatedProduct(t, "9.99", "1").Validate(ctx, &fakeFetcher{body: `{"stock_quantity": "lots"}`})
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("out of range price is an error", func(t *testing.T) {
		_, err := validatedProduct(t, "9.99", "1").Validate(ctx, &fakeFetcher{body: `{"price": 1e20000000}`})
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}

func TestProduct_Validate_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"price": 9.99, "stock_quantity": 5}`))
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`[1,2,3]`))
		}
	}))
	defer srv.Close()

	client := outbound.NewClient(time.Second, nil)
	mk := func(path string) *Product {
		q := decimal.NewFromInt(3)
		return newTestProduct(t, NewProductInput{
			UnitPrice:     decimal.RequireFromString("9.99"),
			Quantity:      &q,
			ValidationURL: strPtr(srv.URL + path),
		})
	}

	ok, err := mk("/ok").Validate(context.Background(), client)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = mk("/down").Validate(context.Background(), client)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, outbound.ErrRejected)

	_, err = mk("/array").Validate(context.Background(), client)
	assert.True(t, errors.Is(err, outbound.ErrMalformedBody))
}

func TestProduct_ReserveAndNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("unset urls are skipped without a call", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{})
		poster := &fakePoster{}

		assert.Equal(t, outbound.KindSkipped, p.Reserve(ctx, poster).Kind)
		assert.Equal(t, outbound.KindSkipped, p.Notify(ctx, poster).Kind)
		assert.Empty(t, poster.urls)
	})

	t.Run("set urls receive exactly one post with the full snapshot", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{
			ReserveURL: strPtr("https://shop.example.com/reserve"),
			WebhookURL: strPtr("https://shop.example.com/hook"),
		})

		reserver := &fakePoster{}
		out := p.Reserve(ctx, reserver)
		assert.Equal(t, outbound.KindDelivered, out.Kind)
		require.Len(t, reserver.urls, 1)
		assert.Equal(t, "https://shop.example.com/reserve", reserver.urls[0])
		assert.Equal(t, p.Snapshot(), reserver.bodies[0])

		notifier := &fakePoster{}
		p.Notify(ctx, notifier)
		require.Len(t, notifier.urls, 1)
		assert.Equal(t, "https://shop.example.com/hook", notifier.urls[0])
	})

	t.Run("rejection is reported, not swallowed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var got map[string]any
			_ = json.NewDecoder(r.Body).Decode(&got)
			assert.Equal(t, "10.5", got["unit_price"])
			w.WriteHeader(http.StatusGone)
		}))
		defer srv.Close()

		p := newTestProduct(t, NewProductInput{
			UnitPrice:  decimal.RequireFromString("10.50"),
			ReserveURL: strPtr(srv.URL),
		})
		out := p.Reserve(ctx, outbound.NewClient(time.Second, nil))
		assert.Equal(t, outbound.KindRejected, out.Kind)
		assert.Equal(t, http.StatusGone, out.StatusCode)
	})
}
