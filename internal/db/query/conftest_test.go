package query

import (
	"strconv"
	"strings"
)

// dollarDialect renders like PostgreSQL.
type dollarDialect struct{}

func (dollarDialect) Name() string               { return "dollar" }
func (dollarDialect) Placeholder(n int) string   { return "$" + strconv.Itoa(n) }
func (dollarDialect) Greatest(e []string) string { return "GREATEST(" + strings.Join(e, ", ") + ")" }
func (dollarDialect) Fuzzy(expr, ph string) string {
	return expr + " % " + ph
}
func (dollarDialect) ILike() string { return "ILIKE" }

// questionDialect renders like SQLite.
type questionDialect struct{}

func (questionDialect) Name() string               { return "question" }
func (questionDialect) Placeholder(int) string     { return "?" }
func (questionDialect) Greatest(e []string) string { return "MAX(" + strings.Join(e, ", ") + ")" }
func (questionDialect) Fuzzy(expr, ph string) string {
	return "similarity(" + expr + ", " + ph + ") >= 0.3"
}
func (questionDialect) ILike() string { return "LIKE" }

var plantColumns = []Column{
	Text("unique_name"),
	TextArray("common_name_de"),
	TextArray("common_name_en"),
	NullableText("edible_uses_en"),
}
