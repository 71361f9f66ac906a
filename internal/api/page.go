package api

import (
	"net/url"
	"strconv"
)

const DefaultLimit = 10

type (
	// Page is one page of a listed resource. Invariants: Page >= 1,
	// Limit >= 1, Total >= 0, len(Items) <= Limit.
	Page[T any] struct {
		Items []T
		Total int
		Page  int
		Limit int
	}

	PageQuery struct {
		Page  int
		Limit int
	}

	rowsEnvelope[T any] struct {
		Rows  []T  `json:"rows"`
		Count *int `json:"count"`
	}

	listEnvelope[T any] struct {
		Rooms      *rowsEnvelope[T] `json:"rooms"`
		Bookings   *rowsEnvelope[T] `json:"bookings"`
		Data       []T              `json:"data"`
		Rows       []T              `json:"rows"`
		Total      *int             `json:"total"`
		Count      *int             `json:"count"`
		TotalCount *int             `json:"totalCount"`
	}
)

func (q PageQuery) normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// values translates (page, limit) to the (limit, offset) pair the backend
// expects, offset = (page-1) * limit.
func (q PageQuery) values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa((q.Page-1)*q.Limit))
	return v
}

// normalizePage folds the two list response shapes the backend may produce,
// nested {rooms|bookings:{rows,count}} or flat {data,total}, into a Page.
// Precedence: nested rows, then data, then flat rows; nested count, then
// total, count, totalCount, finally the length of the rows themselves.
func normalizePage[T any](raw listEnvelope[T], nested *rowsEnvelope[T], q PageQuery) Page[T] {
	var items []T
	switch {
	case nested != nil && nested.Rows != nil:
		items = nested.Rows
	case raw.Data != nil:
		items = raw.Data
	case raw.Rows != nil:
		items = raw.Rows
	}

	total := len(items)
	counts := make([]*int, 0, 4)
	if nested != nil {
		counts = append(counts, nested.Count)
	}
	counts = append(counts, raw.Total, raw.Count, raw.TotalCount)
	for _, count := range counts {
		if count != nil {
			total = *count
			break
		}
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}
}
