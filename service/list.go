package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"taxipark/pkg/models"
	"taxipark/pkg/paginate"
	"taxipark/pkg/tracing"
)

// ListParams are the raw query values of a list page.
type ListParams struct {
	Search string
	Page   string
}

type ListPage[T any] struct {
	Items  []T
	Search string
	Page   paginate.Page
}

// listPage counts the filtered collection first so the requested page can be
// clamped, then fetches only that slice.
func listPage[T any](ctx context.Context, entity string, params ListParams,
	count func(context.Context, string) (int, error),
	list func(context.Context, models.ListFilter) ([]T, error),
) (*ListPage[T], error) {
	ctx, span := tracing.Tracer().Start(ctx, "list "+entity)
	defer span.End()

	search := strings.TrimSpace(params.Search)
	span.SetAttributes(attribute.String("search", search), attribute.String("page", params.Page))

	total, err := count(ctx, search)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	page := paginate.New(total).Page(params.Page)
	result := &ListPage[T]{Items: []T{}, Search: search, Page: page}
	if page.Limit == 0 {
		return result, nil
	}

	items, err := list(ctx, models.ListFilter{
		Search: search,
		Limit:  uint64(page.Limit),
		Offset: uint64(page.Offset),
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	result.Items = items
	return result, nil
}
