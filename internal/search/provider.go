// Package search talks to the hosted search provider. Each catalog
// category is one provider index; the provider ranks hits and the
// caller never re-ranks them.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"partsearch/internal/domain"
)

// Provider searches a single category
type Provider interface {
	Search(ctx context.Context, category, query string, limit int) ([]domain.Item, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, category, query string, limit int) ([]domain.Item, error)

// Search calls f
func (f ProviderFunc) Search(ctx context.Context, category, query string, limit int) ([]domain.Item, error) {
	return f(ctx, category, query, limit)
}

// IndexLister lists the indices a provider serves
type IndexLister interface {
	ListIndices(ctx context.Context) ([]IndexInfo, error)
}

// Sentinel errors matched against ProviderError with errors.Is
var (
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrNotFound     = errors.New("index not found")
	ErrUnavailable  = errors.New("provider unavailable")
)

// ProviderError is a non-2xx response from the provider
type ProviderError struct {
	Index      string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("index %s: status %d: %s", e.Index, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the sentinel errors
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}
