// Package filter turns an account listing request into a parameterized SQL
// predicate. User input only ever reaches the database as bound parameters.
package filter

import (
	"fmt"
	"strings"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/pkg/database"
)

// Field tags the kind of condition a clause applies.
type Field string

const (
	FieldOwner  Field = "owner_id"
	FieldType   Field = "type"
	FieldStatus Field = "status"
	FieldSearch Field = "search"
)

const listOrder = "due_date ASC, created_at DESC, id ASC"

// clause renders a condition given the dialect and the placeholders of its args.
type clause struct {
	field  Field
	render func(d database.Dialect, ph []string) string
	args   []any
}

// Predicate is the conjunction of clauses for one owner's accounts. The row
// fetch and the count render from the same Predicate so they always agree.
type Predicate struct {
	clauses []clause
}

// Build derives the predicate from a filter. The owner condition is always
// present; empty filters add nothing.
func Build(f domain.AccountFilter, ownerID string) Predicate {
	p := Predicate{}
	p.add(FieldOwner, equals("owner_id"), ownerID)

	if f.Type != "" {
		p.add(FieldType, equals("type"), string(f.Type))
	}
	if f.Status != "" {
		p.add(FieldStatus, equals("status"), string(f.Status))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		// both sides go through the same lowercase function so folding always agrees
		p.add(FieldSearch, func(d database.Dialect, ph []string) string {
			q := d.Lower(ph[0])
			return fmt.Sprintf(`(%s LIKE %s ESCAPE '\' OR %s LIKE %s ESCAPE '\')`,
				d.Lower("title"), q, d.Lower("description"), q)
		}, "%"+EscapeLike(search)+"%")
	}
	return p
}

func equals(column string) func(database.Dialect, []string) string {
	return func(_ database.Dialect, ph []string) string {
		return column + " = " + ph[0]
	}
}

func (p *Predicate) add(field Field, render func(database.Dialect, []string) string, args ...any) {
	p.clauses = append(p.clauses, clause{field: field, render: render, args: args})
}

// Fields lists the conditions in the predicate, in order.
func (p Predicate) Fields() []Field {
	fields := make([]Field, len(p.clauses))
	for i, c := range p.clauses {
		fields[i] = c.field
	}
	return fields
}

// Where renders "WHERE ..." and its args. Placeholders are numbered from 1.
func (p Predicate) Where(d database.Dialect) (string, []any) {
	return p.where(d, 1)
}

func (p Predicate) where(d database.Dialect, first int) (string, []any) {
	if len(p.clauses) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(p.clauses))
	args := make([]any, 0, len(p.clauses)+1)
	n := first
	for _, c := range p.clauses {
		placeholders := make([]string, len(c.args))
		for i := range c.args {
			placeholders[i] = d.Placeholder(n)
			n++
		}
		parts = append(parts, c.render(d, placeholders))
		args = append(args, c.args...)
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

// ListQuery selects one page of matching accounts in listing order.
func (p Predicate) ListQuery(d database.Dialect, columns string, limit, offset int) (string, []any) {
	where, args := p.Where(d)
	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM accounts %s ORDER BY %s LIMIT %s OFFSET %s",
		columns, where, listOrder, d.Placeholder(n+1), d.Placeholder(n+2))
	return query, append(args, limit, offset)
}

// CountQuery counts every account matching the predicate, ignoring paging.
func (p Predicate) CountQuery(d database.Dialect) (string, []any) {
	where, args := p.Where(d)
	return "SELECT COUNT(*) FROM accounts " + where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user text matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
