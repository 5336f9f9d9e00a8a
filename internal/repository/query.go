package repository

// ListQuery is the generic query shape applied to listing endpoints: field
// filters (with optional gte/gt/lte/lt operators), sort keys, field
// projection, and page/limit pagination.
type ListQuery struct {
	Filters map[string]string
	Sort    []string
	Fields  []string
	Page    int
	Limit   int
}

func (q ListQuery) PageOrDefault() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

func (q ListQuery) LimitOrDefault() int {
	if q.Limit < 1 {
		return 100
	}
	return q.Limit
}

func (q ListQuery) Offset() int {
	return (q.PageOrDefault() - 1) * q.LimitOrDefault()
}
