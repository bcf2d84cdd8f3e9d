package models

import (
	"testing"

	"github.com/ghuser/supermarket/pkg/result"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		raw     result.Maybe[string]
		wantErr string
	}{
		{result.Some("a@b"), ""},
		{result.Some("jaffa@gmail.com"), ""},
		{result.Some("first.last+tag@sub.example.org"), ""},
		{result.None[string](), "email is invalid"},
		{result.Some(""), "email must not be empty"},
		{result.Some("  "), "email must not be empty"},
		{result.Some("invalidemail"), "email is invalid"},
		{result.Some("abc"), "email is invalid"},
		{result.Some("@b"), "email is invalid"},
		{result.Some("a@"), "email is invalid"},
		{result.Some("a@b@c"), "email is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.raw.ValueOr("<absent>"), func(t *testing.T) {
			r := NewEmail(tt.raw)
			if tt.wantErr == "" {
				if r.IsFailure() {
					t.Fatalf("unexpected error: %v", r.Err())
				}
				if r.Value().String() != tt.raw.Value() {
					t.Fatalf("expected %q, got %q", tt.raw.Value(), r.Value().String())
				}
				return
			}
			if r.IsSuccess() {
				t.Fatal("expected error, got success")
			}
			if r.Err().Error() != tt.wantErr {
				t.Fatalf("expected %q, got %q", tt.wantErr, r.Err().Error())
			}
		})
	}
}

func TestNewOptionalEmail(t *testing.T) {
	t.Run("absent is success none", func(t *testing.T) {
		r := NewOptionalEmail(result.None[string]())
		if r.IsFailure() {
			t.Fatalf("unexpected error: %v", r.Err())
		}
		if r.Value().HasValue() {
			t.Fatal("expected no email")
		}
	})

	t.Run("present and valid", func(t *testing.T) {
		r := NewOptionalEmail(result.Some("jaffa@gmail.com"))
		if r.IsFailure() {
			t.Fatalf("unexpected error: %v", r.Err())
		}
		if r.Value().Value().String() != "jaffa@gmail.com" {
			t.Fatalf("unexpected email %q", r.Value().Value().String())
		}
	})

	t.Run("present and invalid", func(t *testing.T) {
		r := NewOptionalEmail(result.Some("invalidemail"))
		if r.IsSuccess() {
			t.Fatal("expected error, got success")
		}
	})
}
