// Package httpsupplier orders stock from a remote supplier over HTTP.
//
// Each Order is a single POST {base}/orders attempt behind a circuit breaker;
// retries are left to the caller. Any non-2xx reply is a fault.
package httpsupplier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

const (
	breakerName  = "supplier-http"
	maxReplySize = 1 << 16
)

var (
	// ErrUnexpectedStatus wraps every non-2xx supplier reply.
	ErrUnexpectedStatus = errors.New("supplier returned unexpected status")
	// ErrUnavailable is returned while the breaker is open or saturated.
	ErrUnavailable = errors.New("supplier unavailable")
)

// OrderRequest is the body sent to the supplier.
type OrderRequest struct {
	ProductID    int    `json:"product_id"`
	Manufacturer string `json:"manufacturer"`
	Quantity     uint   `json:"quantity"`
}

// OrderReply is the supplier's answer: how many units it ships.
type OrderReply struct {
	Ordered uint `json:"ordered"`
}

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	MaxRequests uint32        // probes allowed while half-open
	Interval    time.Duration // closed-state counting window
	Timeout     time.Duration // open duration before half-open
	MinRequests uint32        // requests in the window before the ratio is evaluated
	FailRatio   float64
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerSettings
	// Transport overrides the round tripper; defaults to an otelhttp-wrapped
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// OptionsFromConfig maps the SUPPLIER_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL: cfg.SupplierURL,
		Timeout: cfg.SupplierTimeout,
		Breaker: BreakerSettings{
			MaxRequests: cfg.BreakerMaxRequests,
			Interval:    cfg.BreakerInterval,
			Timeout:     cfg.BreakerTimeout,
			MinRequests: cfg.BreakerMinRequests,
			FailRatio:   cfg.BreakerFailRatio,
		},
	}
}

// Client implements repositories.Supplier over HTTP.
type Client struct {
	ordersURL string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	log       logger.Logger
}

// New builds a Client. The breaker starts closed.
func New(opts Options, log logger.Logger) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	c := &Client{
		ordersURL: strings.TrimRight(opts.BaseURL, "/") + "/orders",
		http:      &http.Client{Timeout: opts.Timeout, Transport: transport},
		log:       log,
	}

	b := opts.Breaker
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: b.MaxRequests,
		Interval:    b.Interval,
		Timeout:     b.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < b.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= b.FailRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("supplier circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
			recordState(name, to)
		},
		// The caller giving up says nothing about supplier health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	recordState(breakerName, gobreaker.StateClosed)
	return c
}

// Order asks the supplier for requested units of productID and returns how
// many it will deliver.
func (c *Client) Order(ctx context.Context, productID int, manufacturer models.ManufacturerName, requested uint) (uint, error) {
	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, OrderRequest{
			ProductID:    productID,
			Manufacturer: manufacturer.String(),
			Quantity:     requested,
		})
	})
	supplierDuration.WithLabelValues(breakerName).Observe(time.Since(start).Seconds())

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		supplierRequests.WithLabelValues(breakerName, "rejected_open").Inc()
		c.log.WarnContext(ctx, "supplier circuit open", "product_id", productID)
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		supplierRequests.WithLabelValues(breakerName, "failed").Inc()
		return 0, err
	}

	supplierRequests.WithLabelValues(breakerName, "delivered").Inc()
	return out.(uint), nil
}

// State reports the breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) post(ctx context.Context, body OrderRequest) (uint, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode supplier order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ordersURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build supplier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call supplier: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return 0, fmt.Errorf("read supplier reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var reply OrderReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return 0, fmt.Errorf("decode supplier reply: %w", err)
	}
	return reply.Ordered, nil
}
