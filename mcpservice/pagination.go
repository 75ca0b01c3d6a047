package mcpservice

import "strconv"

// Page is a generic paginated result. Items is never nil when built through
// NewPage. NextCursor is set when more results are available.
type Page[T any] struct {
	Items      []T
	NextCursor *string
}

// PageOption configures a Page constructed via NewPage.
type PageOption[T any] func(*Page[T])

// WithNextCursor sets the next cursor on the Page to indicate that more
// results are available.
func WithNextCursor[T any](cursor string) PageOption[T] {
	return func(p *Page[T]) {
		p.NextCursor = &cursor
	}
}

// NewPage constructs a Page with the provided items and optional configuration
// options. If items is nil, it will be replaced with an empty slice.
func NewPage[T any](items []T, opts ...PageOption[T]) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	p := Page[T]{Items: items}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// paginate slices all into a page of at most size items starting at the
// offset encoded in cursor. Cursors are decimal offsets.
func paginate[T any](all []T, cursor *string, size int) Page[T] {
	start := parseCursor(cursor)
	if start > len(all) {
		start = 0
	}
	end := len(all)
	if size > 0 && start+size < end {
		end = start + size
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	if end < len(all) {
		return NewPage(items, WithNextCursor[T](strconv.Itoa(end)))
	}
	return NewPage(items)
}

func parseCursor(cursor *string) int {
	if cursor == nil || *cursor == "" {
		return 0
	}
	n, err := strconv.Atoi(*cursor)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
