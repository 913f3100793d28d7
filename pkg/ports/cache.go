package ports

import (
	"context"

	"github.com/aretw0/kinetic/pkg/domain"
)

// StyleCache keeps the last concrete value observed for each property of an element.
// It backs the "inherit last known value" fallback of the style resolver.
type StyleCache interface {
	// Load returns the cached styles for an element. Unknown elements yield an empty map.
	Load(ctx context.Context, elementID string) (domain.StyleMap, error)

	// Store merges styles into the cached entry of an element.
	Store(ctx context.Context, elementID string, styles domain.StyleMap) error

	// Delete forgets an element.
	Delete(ctx context.Context, elementID string) error
}
