package pagination

import (
	"strconv"
	"strings"
)

// Page describes one slice of an ordered result set. Number is 1-based.
type Page struct {
	Number  int
	PerPage int
	Total   int64
}

func New(number, perPage int, total int64) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return Page{Number: number, PerPage: perPage, Total: total}
}

// Normalize parses the page query parameter. Anything that is not a
// positive integer becomes 1.
func Normalize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Pages() int {
	if p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

// PrevNum points at the last existing page when Number is past the end, so
// an out-of-range request still links somewhere useful.
func (p Page) PrevNum() int {
	if !p.HasPrev() {
		return 0
	}
	if p.OutOfRange() {
		return p.Pages()
	}
	return p.Number - 1
}

func (p Page) HasNext() bool {
	return p.Number < p.Pages()
}

func (p Page) NextNum() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

func (p Page) OutOfRange() bool {
	return p.Number > p.Pages() && p.Number > 1
}

// Iter returns the page numbers to show in a pager. 0 marks a gap.
func (p Page) Iter() []int {
	const (
		leftEdge     = 2
		leftCurrent  = 2
		rightCurrent = 4
		rightEdge    = 2
	)

	pagesEnd := p.Pages() + 1
	if pagesEnd == 1 {
		return nil
	}

	var out []int
	leftEnd := min(1+leftEdge, pagesEnd)
	out = appendRange(out, 1, leftEnd)
	if leftEnd == pagesEnd {
		return out
	}

	current := min(p.Number, p.Pages())
	midStart := max(leftEnd, current-leftCurrent)
	midEnd := min(current+rightCurrent+1, pagesEnd)
	if midStart > leftEnd {
		out = append(out, 0)
	}
	out = appendRange(out, midStart, midEnd)
	if midEnd == pagesEnd {
		return out
	}

	rightStart := max(midEnd, pagesEnd-rightEdge)
	if rightStart > midEnd {
		out = append(out, 0)
	}
	return appendRange(out, rightStart, pagesEnd)
}

func appendRange(out []int, from, to int) []int {
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
