package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{
		field: field,
		value: value,
	}
}

// SQL generates the SQL fragment for equality comparison.
func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s = @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// EqColumn compares two columns, typically to correlate a subquery.
// Example: EqColumn("pc.product_id", "p.product_id") generates "pc.product_id = p.product_id"
func EqColumn(left, right string) Condition {
	return &eqColumnCondition{left: left, right: right}
}

type eqColumnCondition struct {
	left  string
	right string
}

// SQL generates the SQL fragment for column equality. It binds no parameters.
func (c *eqColumnCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s = %s", c.left, c.right), map[string]interface{}{}
}

// ContainsFold matches rows whose field contains substr, ignoring case.
// LIKE wildcards in substr are escaped so they match literally.
// Example: ContainsFold("name", "PC_") generates "LOWER(name) LIKE @p0" with @p0 = "%pc\_%"
func ContainsFold(field, substr string) Condition {
	return &containsFoldCondition{field: field, substr: substr}
}

type containsFoldCondition struct {
	field  string
	substr string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQL generates the SQL fragment for a case-insensitive substring match.
func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	pattern := "%" + likeEscaper.Replace(strings.ToLower(c.substr)) + "%"
	sql := fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName)
	return sql, map[string]interface{}{paramName: pattern}
}

// InUnnest matches rows whose field is one of values.
// Example: InUnnest("category_id", []int64{1, 2}) generates "category_id IN UNNEST(@p0)"
func InUnnest(field string, values interface{}) Condition {
	return &inUnnestCondition{field: field, values: values}
}

type inUnnestCondition struct {
	field  string
	values interface{}
}

// SQL generates the SQL fragment for array membership.
func (c *inUnnestCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName)
	return sql, map[string]interface{}{paramName: c.values}
}

// Exists wraps a correlated subquery as a semi-join. The subquery's select
// list, ordering and pagination are ignored; a semi-join never multiplies
// outer rows, however many inner rows match.
// Example: Exists(From("product_categories pc").Where(EqColumn("pc.product_id", "p.product_id")))
// generates "EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.product_id)"
func Exists(subquery *Builder) Condition {
	return &existsCondition{subquery: subquery}
}

type existsCondition struct {
	subquery *Builder
}

// SQL generates the EXISTS fragment, numbering the subquery's parameters
// from paramIndex so they cannot collide with the outer query's.
func (c *existsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	inner := c.subquery.clone()
	inner.selectCols = []string{"1"}

	var sql strings.Builder
	params := make(map[string]interface{})
	sql.WriteString("EXISTS (")
	inner.writeSelect(&sql, paramIndex, params)
	sql.WriteString(")")
	return sql.String(), params
}
