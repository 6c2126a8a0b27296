package contracts

import (
	"context"

	"github.com/askh-dev/askh/doctree"
)

// IContentProvider supplies the document hierarchy and raw document bodies.
// FetchBody fails with models.ErrNotFound or models.ErrUnavailable.
type IContentProvider interface {
	FetchTree(ctx context.Context) (doctree.Snapshot, error)
	FetchBody(ctx context.Context, path string) (string, error)
}

// IConversationService accepts a user message and returns the assistant's
// reply. Failures wrap models.ErrUnavailable.
type IConversationService interface {
	Converse(ctx context.Context, message string) (string, error)
}

// IHealthChecker is implemented by providers that can be pinged, so the shell
// can tell a down backend apart from an empty documentation tree.
type IHealthChecker interface {
	Health(ctx context.Context) error
}
