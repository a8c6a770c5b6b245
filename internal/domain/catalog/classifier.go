package catalog

import (
	"context"

	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/types"
)

// Classifier maps an invoice line item to its reporting category
type Classifier func(item *invoice.LineItem) types.ItemCategory

// NewRepositoryClassifier builds a classifier backed by the service catalog.
// Items without a service reference, or whose service cannot be resolved, are
// counted as product sales; that is how the report pages have always bucketed
// ad-hoc retail lines.
func NewRepositoryClassifier(ctx context.Context, repo Repository) (Classifier, error) {
	services, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]types.ItemCategory, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc.Category
	}

	return func(item *invoice.LineItem) types.ItemCategory {
		if item.ServiceID == nil {
			return types.ItemCategoryProduct
		}
		if category, ok := byID[*item.ServiceID]; ok {
			return category
		}
		return types.ItemCategoryProduct
	}, nil
}
