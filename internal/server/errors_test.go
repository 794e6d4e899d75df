package server

import (
	"net/http"
	"testing"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
	orderdomain "github.com/capstore/capstore/internal/order/domain"
	pricedomain "github.com/capstore/capstore/internal/price/domain"
	productdomain "github.com/capstore/capstore/internal/product/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"price conflict", pricedomain.ErrPriceConflict, http.StatusConflict, "conflict"},
		{"multiple active prices", pricedomain.ErrMultipleActivePrices, http.StatusInternalServerError, "invariant_violation"},
		{"deletion blocked", branddomain.ErrDeletionBlocked, http.StatusConflict, "deletion_blocked"},
		{"brand not found", branddomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"no active price", pricedomain.ErrNoActivePrice, http.StatusNotFound, "not_found"},
		{"order owned by someone else", orderdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"order without identity", orderdomain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"invalid price value", pricedomain.ErrInvalidValue, http.StatusBadRequest, "validation_error"},
		{"empty order", orderdomain.ErrNoItems, http.StatusBadRequest, "validation_error"},
		{"duplicate brand", branddomain.ErrBrandExists, http.StatusConflict, "conflict"},
		{"invalid sort", productdomain.ErrInvalidSort, http.StatusBadRequest, "validation_error"},
		{"unknown error", errTestOpaque, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, status)
			}
			if payload.Type != tc.wantType {
				t.Fatalf("expected type %q, got %q", tc.wantType, payload.Type)
			}
		})
	}
}

func TestMapErrorValidationCarriesCode(t *testing.T) {
	status, payload := mapError(orderdomain.ErrInvalidQuantity)
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if len(payload.Errors) != 1 {
		t.Fatalf("expected one validation entry, got %d", len(payload.Errors))
	}
	if payload.Errors[0].Code != "invalid_quantity" {
		t.Fatalf("expected code invalid_quantity, got %q", payload.Errors[0].Code)
	}
	if payload.Errors[0].Field != "quantity" {
		t.Fatalf("expected field quantity, got %q", payload.Errors[0].Field)
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(pricedomain.ErrInvalidValue)
	if typ != "validation_error" {
		t.Fatalf("expected validation_error, got %q", typ)
	}
	if code != "invalid_value" {
		t.Fatalf("expected invalid_value, got %q", code)
	}

	typ, code = classifyErrorForLog(pricedomain.ErrPriceConflict)
	if typ != "conflict" || code != "conflict" {
		t.Fatalf("expected conflict/conflict, got %q/%q", typ, code)
	}
}

var errTestOpaque = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
