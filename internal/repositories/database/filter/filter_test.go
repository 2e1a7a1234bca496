package filter

import (
	"testing"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/pkg/database"
	"github.com/stretchr/testify/assert"
)

const owner = "3f6c2a6e-1111-4c3b-9a51-6f0d9f1b2a10"

func TestBuild_OwnerOnly(t *testing.T) {
	p := Build(domain.AccountFilter{Search: "   "}, owner)

	assert.Equal(t, []Field{FieldOwner}, p.Fields())

	where, args := p.Where(database.Postgres)
	assert.Equal(t, "WHERE owner_id = $1", where)
	assert.Equal(t, []any{owner}, args)
}

func TestBuild_AllFilters(t *testing.T) {
	p := Build(domain.AccountFilter{
		Type:   domain.Payable,
		Status: domain.Pending,
		Search: " Light ",
	}, owner)

	assert.Equal(t, []Field{FieldOwner, FieldType, FieldStatus, FieldSearch}, p.Fields())

	where, args := p.Where(database.Postgres)
	assert.Equal(t,
		`WHERE owner_id = $1 AND type = $2 AND status = $3 AND `+
			`(LOWER(title) LIKE LOWER($4) ESCAPE '\' OR LOWER(description) LIKE LOWER($4) ESCAPE '\')`,
		where)
	assert.Equal(t, []any{owner, "payable", "pending", "%Light%"}, args)
}

func TestBuild_SearchIsEscapedAndBound(t *testing.T) {
	p := Build(domain.AccountFilter{Search: `50%_off\'; DROP TABLE accounts; --`}, owner)

	where, args := p.Where(database.SQLite)
	assert.NotContains(t, where, "DROP")
	assert.Contains(t, where, "unicode_lower(title) LIKE unicode_lower(?2)")
	assert.Equal(t, `%50\%\_off\\'; DROP TABLE accounts; --%`, args[1])
}

func TestBuild_SearchFoldsBothSidesPerDialect(t *testing.T) {
	p := Build(domain.AccountFilter{Search: "ÁGUA"}, owner)

	where, args := p.Where(database.SQLite)
	assert.Equal(t,
		`WHERE owner_id = ?1 AND `+
			`(unicode_lower(title) LIKE unicode_lower(?2) ESCAPE '\' OR unicode_lower(description) LIKE unicode_lower(?2) ESCAPE '\')`,
		where)
	assert.Equal(t, "%ÁGUA%", args[1])
}

func TestListAndCountShareThePredicate(t *testing.T) {
	p := Build(domain.AccountFilter{Type: domain.Receivable, Search: "rent"}, owner)

	list, listArgs := p.ListQuery(database.SQLite, "id, title", 10, 20)
	count, countArgs := p.CountQuery(database.SQLite)

	where, whereArgs := p.Where(database.SQLite)
	assert.Equal(t,
		"SELECT id, title FROM accounts "+where+" ORDER BY due_date ASC, created_at DESC, id ASC LIMIT ?4 OFFSET ?5",
		list)
	assert.Equal(t, append(append([]any{}, whereArgs...), 10, 20), listArgs)

	assert.Equal(t, "SELECT COUNT(*) FROM accounts "+where, count)
	assert.Equal(t, whereArgs, countArgs)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", EscapeLike("plain"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
}
