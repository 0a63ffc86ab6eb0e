package ports

import (
	"context"

	"github.com/aretw0/axtree/pkg/domain"
)

// DocumentSaver persists dumped subtrees.
type DocumentSaver interface {
	// Save writes the document under the given name, replacing any
	// previous content.
	Save(ctx context.Context, doc *domain.Document, name string) error
}
