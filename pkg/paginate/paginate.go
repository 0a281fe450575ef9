// Package paginate slices an ordered, already filtered collection into
// fixed-size pages. Out-of-range page requests are clamped, never rejected.
package paginate

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the page size of every list view.
const DefaultPerPage = 5

// LastPage may be passed instead of a number to select the final page.
const LastPage = "last"

type Paginator struct {
	PerPage int
	Count   int
}

func New(count int) Paginator {
	return Paginator{PerPage: DefaultPerPage, Count: count}
}

// NumPages is never below one so an empty collection still has a first page.
func (p Paginator) NumPages() int {
	perPage := p.perPage()
	if p.Count <= 0 {
		return 1
	}
	return (p.Count + perPage - 1) / perPage
}

// Page resolves a raw page parameter to a concrete page.
func (p Paginator) Page(raw string) Page {
	numPages := p.NumPages()
	number := ParseNumber(raw, numPages)
	perPage := p.perPage()

	offset := (number - 1) * perPage
	limit := perPage
	if rest := p.Count - offset; rest < limit {
		limit = max(rest, 0)
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PerPage:     perPage,
		Count:       max(p.Count, 0),
		Offset:      offset,
		Limit:       limit,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		IsPaginated: p.Count > perPage,
	}
}

func (p Paginator) perPage() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

// ParseNumber maps a raw value onto [1, numPages]: blanks and garbage give 1,
// "last" gives numPages, anything out of range snaps to the nearest bound.
func ParseNumber(raw string, numPages int) int {
	if numPages < 1 {
		numPages = 1
	}
	raw = strings.TrimSpace(raw)
	if raw == LastPage {
		return numPages
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

type Page struct {
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	PerPage     int  `json:"per_page"`
	Count       int  `json:"count"`
	Offset      int  `json:"-"`
	Limit       int  `json:"-"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
	IsPaginated bool `json:"is_paginated"`
}

func (p Page) NextNumber() int {
	if p.HasNext {
		return p.Number + 1
	}
	return p.Number
}

func (p Page) PreviousNumber() int {
	if p.HasPrevious {
		return p.Number - 1
	}
	return p.Number
}

// Numbers lists every page number, for rendering page links.
func (p Page) Numbers() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// StartIndex is the 1-based position of the first item on the page, 0 when empty.
func (p Page) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return p.Offset + 1
}

func (p Page) EndIndex() int {
	return p.Offset + p.Limit
}
