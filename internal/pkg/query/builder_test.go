package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name", "price").
		Build()

	assert.Equal(t, "SELECT product_id, name, price FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("categories").Build()

	assert.Equal(t, "SELECT * FROM categories", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_WhereConditionsNumberParams(t *testing.T) {
	stmt := From("products p").
		Select("p.product_id").
		Where(Eq("p.product_id", int64(7))).
		Where(ContainsFold("p.name", "gamer")).
		Build()

	assert.Equal(t, "SELECT p.product_id FROM products p WHERE p.product_id = @p0 AND LOWER(p.name) LIKE @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": int64(7),
		"p1": "%gamer%",
	}, stmt.Params)
}

func TestBuilder_OrderByMultipleKeys(t *testing.T) {
	stmt := From("products p").
		Select("p.product_id", "p.name").
		OrderBy("p.name", Asc).
		OrderBy("p.price", Desc).
		OrderBy("p.product_id", Asc).
		Build()

	assert.Equal(t, "SELECT p.product_id, p.name FROM products p ORDER BY p.name ASC, p.price DESC, p.product_id ASC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Limit(12).
		Offset(24).
		Build()

	assert.Equal(t, "SELECT product_id FROM products LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(12),
		"offset": int64(24),
	}, stmt.Params)
}

func TestBuilder_ZeroOffsetOmitted(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Limit(12).
		Offset(0).
		Build()

	assert.Equal(t, "SELECT product_id FROM products LIMIT @limit", stmt.SQL)
}

func TestBuilder_LeftJoins(t *testing.T) {
	stmt := From("products p").
		Select("p.product_id", "c.category_id").
		LeftJoin("product_categories pc", "pc.product_id = p.product_id").
		LeftJoin("categories c", "c.category_id = pc.category_id").
		Where(InUnnest("p.product_id", []int64{1, 2})).
		Build()

	expectedSQL := "SELECT p.product_id, c.category_id FROM products p" +
		" LEFT JOIN product_categories pc ON pc.product_id = p.product_id" +
		" LEFT JOIN categories c ON c.category_id = pc.category_id" +
		" WHERE p.product_id IN UNNEST(@p0)"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": []int64{1, 2}}, stmt.Params)
}

func TestBuilder_ExistsSubquery(t *testing.T) {
	assoc := From("product_categories pc").
		Select("pc.category_id").
		Where(EqColumn("pc.product_id", "p.product_id")).
		Where(InUnnest("pc.category_id", []int64{1, 3}))

	stmt := From("products p").
		Select("p.product_id", "p.name").
		Where(ContainsFold("p.name", "pc")).
		Where(Exists(assoc)).
		Where(Eq("p.name", "PC Gamer")).
		OrderBy("p.name", Asc).
		Build()

	expectedSQL := "SELECT p.product_id, p.name FROM products p" +
		" WHERE LOWER(p.name) LIKE @p0" +
		" AND EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.product_id AND pc.category_id IN UNNEST(@p1))" +
		" AND p.name = @p2" +
		" ORDER BY p.name ASC"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "%pc%",
		"p1": []int64{1, 3},
		"p2": "PC Gamer",
	}, stmt.Params)

	// The subquery builder keeps its own select list
	assert.Contains(t, assoc.Build().SQL, "SELECT pc.category_id")
}

func TestBuilder_Count(t *testing.T) {
	builder := From("products p").
		Select("p.product_id", "p.name").
		Where(ContainsFold("p.name", "phone")).
		OrderBy("p.name", Asc).
		Limit(12).
		Offset(24)

	// Main query
	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "SELECT p.product_id, p.name FROM products p")
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
	assert.Contains(t, mainStmt.SQL, "OFFSET @offset")

	// Count query - should reuse WHERE but not pagination/ordering
	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products p WHERE LOWER(p.name) LIKE @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "%phone%",
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
	base := From("products").Select("product_id").OrderBy("name", Asc)

	stmt1 := base.Where(Eq("name", "Smart TV")).OrderBy("product_id", Asc).Build()
	stmt2 := base.Where(InUnnest("product_id", []int64{1})).Build()

	assert.Contains(t, stmt1.SQL, "name = @p0")
	assert.Contains(t, stmt1.SQL, "ORDER BY name ASC, product_id ASC")
	assert.NotContains(t, stmt1.SQL, "UNNEST")

	assert.Contains(t, stmt2.SQL, "product_id IN UNNEST(@p0)")
	assert.Contains(t, stmt2.SQL, "ORDER BY name ASC")
	assert.NotContains(t, stmt2.SQL, "product_id ASC")
}

func TestCondition_EqWithDifferentParamIndex(t *testing.T) {
	sql, params := Eq("category_id", int64(2)).SQL(5)

	assert.Equal(t, "category_id = @p5", sql)
	assert.Equal(t, map[string]interface{}{
		"p5": int64(2),
	}, params)
}

func TestCondition_ContainsFold(t *testing.T) {
	tests := []struct {
		name    string
		substr  string
		pattern string
	}{
		{name: "lowercases input", substr: "PhOnE", pattern: "%phone%"},
		{name: "empty matches all", substr: "", pattern: "%%"},
		{name: "escapes percent", substr: "50%", pattern: `%50\%%`},
		{name: "escapes underscore", substr: "pc_gamer", pattern: `%pc\_gamer%`},
		{name: "escapes backslash", substr: `a\b`, pattern: `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := ContainsFold("name", tt.substr).SQL(0)
			assert.Equal(t, "LOWER(name) LIKE @p0", sql)
			assert.Equal(t, tt.pattern, params["p0"])
		})
	}
}

func TestCondition_EqColumnBindsNothing(t *testing.T) {
	sql, params := EqColumn("pc.product_id", "p.product_id").SQL(3)

	assert.Equal(t, "pc.product_id = p.product_id", sql)
	assert.Empty(t, params)
}

func TestBuilder_String(t *testing.T) {
	builder := From("products").
		Select("product_id", "name").
		Where(Eq("name", "Macbook Pro"))

	str := builder.String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "products")
}
