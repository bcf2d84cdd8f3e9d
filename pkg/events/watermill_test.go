package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/supermarket/pkg/logger"
)

func setupTracer(t *testing.T) {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
}

func nopLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

// failingUntil returns a handler that fails its first n calls.
func failingUntil(n int, calls *int) func(context.Context, *message.Message) error {
	return func(context.Context, *message.Message) error {
		*calls++
		if *calls <= n {
			return errors.New("projection failed")
		}
		return nil
	}
}

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		canceled  bool
		wantErr   bool
		wantCalls int
	}{
		{"succeeds first time", 0, false, false, 1},
		{"succeeds on last attempt", maxRetries - 1, false, false, maxRetries},
		{"exhausts retries", maxRetries, false, true, maxRetries},
		// One call, then the wait between attempts sees the canceled context.
		{"context canceled", maxRetries, true, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			delay := time.Millisecond
			if tt.canceled {
				cancel()
				delay = time.Minute
			}

			calls := 0
			err := retryWithBackoff(ctx, message.NewMessage("id", nil), failingUntil(tt.failures, &calls), maxRetries, delay, nopLogger())

			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("evt-1", 2, struct {
		ProductID int `json:"product_id"`
		Units     uint `json:"units"`
	}{7, 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Metadata.Get(MetadataEventID) != "evt-1" {
		t.Errorf("expected event id metadata, got %q", msg.Metadata.Get(MetadataEventID))
	}
	if msg.Metadata.Get(MetadataEventVersion) != "2" {
		t.Errorf("expected version metadata 2, got %q", msg.Metadata.Get(MetadataEventVersion))
	}
	if string(msg.Payload) != `{"product_id":7,"units":100}` {
		t.Errorf("unexpected payload %s", msg.Payload)
	}
}

func TestNewMessage_UnencodablePayload(t *testing.T) {
	if _, err := NewMessage("evt-1", 1, make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}

// A worker handling a product event continues the API request's trace.
func TestTracePropagation(t *testing.T) {
	setupTracer(t)

	ctx, span := otel.Tracer("product-repository").Start(context.Background(), "product.commit")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	msg := message.NewMessage("id", nil)
	injectTrace(ctx, []*message.Message{msg})
	msgCtx := extractTrace(context.Background(), msg)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}
