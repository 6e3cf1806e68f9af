package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name", "currency").
		Build()

	assert.Equal(t, "SELECT product_id, name, currency FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SingleWhereCondition(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Where(Eq("business_id", "biz-1")).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products WHERE business_id = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "biz-1",
	}, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Where(Eq("business_id", "biz-1")).
		Where(Eq("status", "active")).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products WHERE business_id = @p0 AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "biz-1",
		"p1": "active",
	}, stmt.Params)
}

func TestBuilder_OrderByAsc(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		OrderBy("created_at", Asc).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products ORDER BY created_at ASC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_OrderByDesc(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		OrderBy("created_at", Desc).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products ORDER BY created_at DESC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_Limit(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Limit(10).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit": int64(10),
	}, stmt.Params)
}

func TestBuilder_Offset(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Offset(20).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_CompleteQuery(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name", "currency", "status").
		Where(Eq("business_id", "biz-1")).
		Where(Eq("status", "active")).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100).
		Build()

	expectedSQL := "SELECT product_id, name, currency, status FROM products WHERE business_id = @p0 AND status = @p1 ORDER BY created_at DESC LIMIT @limit OFFSET @offset"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "biz-1",
		"p1":     "active",
		"limit":  int64(50),
		"offset": int64(100),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("products").
		Select("product_id", "name", "currency").
		Where(Eq("business_id", "biz-1")).
		Where(Eq("status", "active")).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100)

	// Main query
	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "SELECT product_id, name, currency FROM products")
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
	assert.Contains(t, mainStmt.SQL, "OFFSET @offset")

	// Count query - should reuse WHERE but not pagination/ordering
	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE business_id = @p0 AND status = @p1", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "biz-1",
		"p1": "active",
	}, countStmt.Params)

	// Verify original builder is unchanged (immutability)
	mainStmt2 := builder.Build()
	assert.Equal(t, mainStmt.SQL, mainStmt2.SQL)
}

func TestBuilder_CountWithoutFilters(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Count().
		Build()

	assert.Equal(t, "SELECT COUNT(*) FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")

	// Add different WHERE conditions
	stmt1 := base.Where(Eq("status", "active")).Build()
	stmt2 := base.Where(Eq("business_id", "biz-1")).Build()

	// Both should have their own conditions
	assert.Contains(t, stmt1.SQL, "status = @p0")
	assert.NotContains(t, stmt1.SQL, "business_id")

	assert.Contains(t, stmt2.SQL, "business_id = @p0")
	assert.NotContains(t, stmt2.SQL, "status")
}

func TestBuilder_EmptyWhere(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		OrderBy("created_at", Desc).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products ORDER BY created_at DESC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_OnlyWhereNoOrderOrPagination(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(Eq("status", "active")).
		Build()

	assert.Equal(t, "SELECT product_id FROM products WHERE status = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "active",
	}, stmt.Params)
}

func TestCondition_Eq(t *testing.T) {
	cond := Eq("status", "active")
	sql, params := cond.SQL(0)

	assert.Equal(t, "status = @p0", sql)
	assert.Equal(t, map[string]interface{}{
		"p0": "active",
	}, params)
}

func TestCondition_EqWithDifferentParamIndex(t *testing.T) {
	cond := Eq("business_id", "biz-1")
	sql, params := cond.SQL(5)

	assert.Equal(t, "business_id = @p5", sql)
	assert.Equal(t, map[string]interface{}{
		"p5": "biz-1",
	}, params)
}

func TestBuilder_String(t *testing.T) {
	builder := From("products").
		Select("product_id", "name").
		Where(Eq("status", "active"))

	str := builder.String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "products")
}

func TestBuilder_MultipleSelectCalls(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Select("currency", "status").
		Build()

	assert.Equal(t, "SELECT product_id, name, currency, status FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestCondition_Ne(t *testing.T) {
	cond := Ne("status", "deleted")
	sql, params := cond.SQL(2)

	assert.Equal(t, "status != @p2", sql)
	assert.Equal(t, map[string]interface{}{
		"p2": "deleted",
	}, params)
}

func TestBuilder_WhereAll(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		WhereAll([]Condition{Eq("tenant_id", "t-1"), Eq("business_id", "b-1"), Ne("status", "deleted")}).
		Build()

	assert.Equal(t, "SELECT product_id FROM products WHERE tenant_id = @p0 AND business_id = @p1 AND status != @p2", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "t-1",
		"p1": "b-1",
		"p2": "deleted",
	}, stmt.Params)
}

func TestRender_NumbersParametersAcrossConditions(t *testing.T) {
	fragments := Render([]Condition{Eq("tenant_id", "t-1"), Ne("status", "deleted"), Eq("business_id", "b-1")})
	require.Len(t, fragments, 3)

	assert.Equal(t, "tenant_id = @p0", fragments[0].SQL)
	assert.Equal(t, "status != @p1", fragments[1].SQL)
	assert.Equal(t, map[string]interface{}{"p1": "deleted"}, fragments[1].Params)
	assert.Equal(t, "business_id = @p2", fragments[2].SQL)
	assert.Equal(t, map[string]interface{}{"p2": "b-1"}, fragments[2].Params)
}
