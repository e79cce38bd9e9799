package option

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type record struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"type:text"`
	Price     float64
	CreatedAt int64 `gorm:"autoCreateTime:nano"`
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&record{}))

	rows := []record{
		{ID: 1, Name: "Alpha", Price: 10},
		{ID: 2, Name: "beta", Price: 20},
		{ID: 3, Name: "Gamma", Price: 30},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func find(t *testing.T, db *gorm.DB, opts ...QueryOption) []record {
	t.Helper()

	q := db.Model(&record{})
	for _, opt := range opts {
		q = opt.Apply(q)
	}

	var out []record
	require.NoError(t, q.Find(&out).Error)
	return out
}

func TestApplyOperator(t *testing.T) {
	db := setupDB(t)

	out := find(t, db, ApplyOperator(Condition{Field: "price", Operator: GTE, Value: 20}))
	assert.Len(t, out, 2)

	out = find(t, db, ApplyOperator(Condition{Field: "price", Operator: LTE, Value: 15}))
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Name)
}

func TestWithContains_CaseInsensitive(t *testing.T) {
	db := setupDB(t)

	out := find(t, db, WithContains("name", "ALPH"))
	require.Len(t, out, 1)
	assert.Equal(t, "Alpha", out[0].Name)

	// Blank filter is a no-op.
	out = find(t, db, WithContains("name", "   "))
	assert.Len(t, out, 3)
}

func TestWithSortBy_AllowList(t *testing.T) {
	db := setupDB(t)
	allow := map[string]bool{"price": true}

	out := find(t, db, WithSortBy(WithQuerySortBy("price", "asc", allow)))
	require.Len(t, out, 3)
	assert.Equal(t, 10.0, out[0].Price)

	out = find(t, db, WithSortBy(WithQuerySortBy("price", "desc", allow)))
	assert.Equal(t, 30.0, out[0].Price)

	// A field outside the allow-list falls back to created_at DESC.
	out = find(t, db, WithSortBy(WithQuerySortBy("name; DROP TABLE records", "asc", allow)))
	assert.Len(t, out, 3)
}

func TestWithLimitOffset(t *testing.T) {
	db := setupDB(t)

	out := find(t, db, WithSortBy(WithQuerySortBy("price", "asc", map[string]bool{"price": true})), WithLimitOffset(2, 0))
	require.Len(t, out, 2)
	assert.Equal(t, 10.0, out[0].Price)

	out = find(t, db, WithSortBy(WithQuerySortBy("price", "asc", map[string]bool{"price": true})), WithLimitOffset(2, 2))
	require.Len(t, out, 1)
	assert.Equal(t, 30.0, out[0].Price)
}
