package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain"
)

func TestNewProductName(t *testing.T) {
	tests := []struct {
		name    string
		raw     result.Maybe[string]
		wantErr string
	}{
		{"single character", result.Some("a"), ""},
		{"normal name", result.Some("Oranges"), ""},
		{"100 characters", result.Some(strings.Repeat("x", 100)), ""},
		{"100 multibyte characters", result.Some(strings.Repeat("é", 100)), ""},
		{"surrounding spaces kept", result.Some("  Oranges "), ""},
		{"absent", result.None[string](), "product name is invalid"},
		{"empty", result.Some(""), "product name must not be empty"},
		{"whitespace only", result.Some(" \t\n"), "product name must not be empty"},
		{"101 characters", result.Some(strings.Repeat("x", 101)), "product name is too long"},
		{"1000 characters", result.Some(strings.Repeat("x", 1000)), "product name is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewProductName(tt.raw)
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
			if !errors.Is(r.Err(), domain.ErrInvalidProduct) {
				t.Fatal("expected ErrInvalidProduct kind")
			}
		})
	}
}

func TestProductName_Equality(t *testing.T) {
	a := NewProductName(result.Some("Oranges")).Value()
	b := NewProductName(result.Some("Oranges")).Value()
	c := NewProductName(result.Some("oranges")).Value()

	if a != b {
		t.Fatal("names with the same text must be equal")
	}
	if a == c {
		t.Fatal("names differing in case must not be equal")
	}
}

func TestNewManufacturerName(t *testing.T) {
	tests := []struct {
		name    string
		raw     result.Maybe[string]
		wantErr string
	}{
		{"valid", result.Some("Jaffa"), ""},
		{"256 characters", result.Some(strings.Repeat("m", 256)), ""},
		{"absent", result.None[string](), "manufacturer name is invalid"},
		{"blank", result.Some("   "), "manufacturer name must not be empty"},
		{"257 characters", result.Some(strings.Repeat("m", 257)), "manufacturer name is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewManufacturerName(tt.raw)
			if tt.wantErr == "" {
				if r.IsFailure() {
					t.Fatalf("unexpected error: %v", r.Err())
				}
				if r.Value().String() != tt.raw.Value() {
					t.Fatalf("expected %q, got %q", tt.raw.Value(), r.Value().String())
				}
				return
			}
			if r.IsSuccess() || r.Err().Error() != tt.wantErr {
				t.Fatalf("expected error %q, got %+v", tt.wantErr, r)
			}
		})
	}
}
