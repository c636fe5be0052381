package pagination

const (
	// DefaultPageSize applies when a request names no size.
	DefaultPageSize = 20
	// MaxPageSize caps what a client may ask for in one page.
	MaxPageSize = 100
)

// OffsetRequest is a page/size pagination request bound from query
// parameters.
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Validate normalizes out-of-range values in place. It never fails;
// nonsense input degrades to the first default page.
func (r *OffsetRequest) Validate() error {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return nil
}

// OffsetResult is one page of items plus the totals a client needs to
// render pagination controls.
type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
}

func NewOffsetResult[T any](items []T, total int64, page, size int) *OffsetResult[T] {
	offset := (page - 1) * size
	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasMore: int64(offset+size) < total,
	}
}
