// Package query maps the refine-style list parameters (_start, _end, _sort,
// _order) shared by every list endpoint onto an offset window and a safe
// ORDER BY clause.
package query

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Page struct {
	Start int
	End   int
	Sort  string
	Order string
}

func FromCtx(c *fiber.Ctx) Page {
	return Page{
		Start: c.QueryInt("_start", 0),
		End:   c.QueryInt("_end", 0),
		Sort:  c.Query("_sort"),
		Order: c.Query("_order"),
	}
}

// Limit derives the window size from the start/end pair. Zero means no limit.
func (p Page) Limit() int {
	if p.End > p.Start {
		return p.End - p.Start
	}
	return 0
}

func (p Page) Offset() int {
	if p.Start > 0 {
		return p.Start
	}
	return 0
}

// OrderClause resolves the requested sort field against a whitelist of
// json-name -> column mappings. Unknown fields fall back to def.
func (p Page) OrderClause(allowed map[string]string, def string) string {
	col, ok := allowed[p.Sort]
	if !ok {
		return def
	}
	dir := "ASC"
	if strings.EqualFold(p.Order, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}
