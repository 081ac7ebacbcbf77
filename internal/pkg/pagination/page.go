package pagination

// Page is one slice of a larger ordered result set plus the metadata that
// locates it. TotalElements is counted independently of Size.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// NewPage creates a page for req. A nil content slice becomes empty.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// Empty returns a page with no content and a zero total.
func Empty[T any](req Request) Page[T] {
	return NewPage[T](nil, req, 0)
}

// Assemble transplants content into meta's pagination metadata. Number, Size
// and TotalElements are reused verbatim: content is only the current slice
// and cannot be used to recompute totals.
func Assemble[T, U any](content []U, meta Page[T]) Page[U] {
	if content == nil {
		content = []U{}
	}
	return Page[U]{
		Content:       content,
		Number:        meta.Number,
		Size:          meta.Size,
		TotalElements: meta.TotalElements,
	}
}

// TotalPages returns ceil(TotalElements / Size).
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	size := int64(p.Size)
	return int((p.TotalElements + size - 1) / size)
}

// NumberOfElements returns the length of the current content.
func (p Page[T]) NumberOfElements() int {
	return len(p.Content)
}

// IsFirst reports whether this is the first page.
func (p Page[T]) IsFirst() bool {
	return p.Number == 0
}

// IsLast reports whether no page follows this one.
func (p Page[T]) IsLast() bool {
	return p.Number+1 >= p.TotalPages()
}

// IsEmpty reports whether the page has no content.
func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// ResolveTotal derives the total element count from the fetched content when
// it can, and calls count otherwise. A page that is not full is the last
// one, so its total is offset + len(content), unless it is empty past the
// first page: then the offset may overshoot and only count can tell.
// The returned bool reports whether count was called.
func ResolveTotal(req Request, contentLen int, count func() (int64, error)) (int64, bool, error) {
	if contentLen < req.Size {
		if req.Offset() == 0 {
			return int64(contentLen), false, nil
		}
		if contentLen > 0 {
			return req.Offset() + int64(contentLen), false, nil
		}
	}

	total, err := count()
	if err != nil {
		return 0, true, err
	}
	return total, true, nil
}
