package httpx

import "context"

// Page is one page of a capped collection endpoint. Total may be zero when
// the upstream does not report one.
type Page[T any] struct {
	Items []T
	Total int
}

// Paged accumulates every page of a collection endpoint into one ordered
// slice. It requests with increasing offset until a page comes back shorter
// than pageSize, or the reported total has been reached. Zero-result and
// exactly-one-page responses terminate after a single request when the
// upstream reports its total.
func Paged[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, offset, limit int) (Page[T], error)) ([]T, error) {
	all := []T{}
	for offset := 0; ; offset += pageSize {
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		if len(page.Items) < pageSize {
			break
		}
		if page.Total > 0 && offset+pageSize >= page.Total {
			break
		}
	}
	return all, nil
}
