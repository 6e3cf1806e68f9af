package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using named parameters (@paramName). Spanner and GORM both accept
// this format, so one condition list serves every store.
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// Fragment is a rendered condition.
type Fragment struct {
	SQL    string
	Params map[string]interface{}
}

// Render renders conditions in order with the same parameter numbering
// Builder.Build uses.
func Render(conditions []Condition) []Fragment {
	fragments := make([]Fragment, 0, len(conditions))
	paramIndex := 0
	for _, condition := range conditions {
		sql, params := condition.SQL(paramIndex)
		fragments = append(fragments, Fragment{SQL: sql, Params: params})
		paramIndex += len(params)
	}
	return fragments
}

// comparison implements binary comparisons (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Ne creates a WHERE condition for inequality comparison.
// Example: Ne("status", "deleted") generates "status != @p0"
func Ne(field string, value interface{}) Condition {
	return &comparison{field: field, op: "!=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}
