package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page is a validated page request.
type Page struct {
	Number int
	Size   int
}

// Normalize coerces raw page and page_size values. Anything missing,
// non-numeric or below 1 falls back to the default.
func Normalize(rawPage, rawSize string) Page {
	return Page{
		Number: parsePositive(rawPage, DefaultPage),
		Size:   parsePositive(rawSize, DefaultPageSize),
	}
}

// Clamp applies the same fallback to already-parsed values.
func Clamp(page, size int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return Page{Number: page, Size: size}
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Offset is the number of rows that precede this page. It saturates at
// math.MaxInt instead of wrapping, so a page past any real table is empty.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(total/size); zero rows means zero pages.
func TotalPages(total int64, size int) int64 {
	if total <= 0 || size < 1 {
		return 0
	}
	s := int64(size)
	return (total + s - 1) / s
}
