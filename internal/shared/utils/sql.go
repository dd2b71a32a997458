package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder gom các điều kiện WHERE với placeholder $n tăng dần
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add thêm một điều kiện, "?" trong clause được thay bằng $n
func (w *WhereBuilder) Add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// SQL trả về " WHERE ..." hoặc "" nếu không có điều kiện
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

// Args trả về các tham số đã thêm
func (w *WhereBuilder) Args() []any {
	return w.args
}

// NextArg trả về placeholder kế tiếp, dùng cho LIMIT/OFFSET sau WHERE
func (w *WhereBuilder) NextArg(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}
