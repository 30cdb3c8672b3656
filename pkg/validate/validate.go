// Package validate checks whether an executed query's result
// reproduces an Example's target table. Column order is significant,
// row order is not: Cypher guarantees no row order without ORDER BY,
// and ordering is never synthesized.
package validate

import (
	"sort"
	"strings"

	"github.com/cyphersynth/synth/pkg/example"
	"github.com/cyphersynth/synth/pkg/executor"
)

// Matches reports whether table reproduces the target rows exactly,
// once both are normalized to a sorted multiset of row keys (fields
// joined with a unit separator). When the target has rows, a column
// count that differs from the target's row width never matches; an
// empty result always matches an empty target.
func Matches(table executor.Table, target []example.Row) bool {
	if len(table.Rows) != len(target) {
		return false
	}
	if len(target) == 0 {
		return true
	}
	if len(table.Columns) != len(target[0]) {
		return false
	}

	got := rowKeys(table.Rows)
	want := make([]string, len(target))
	for i, row := range target {
		want[i] = rowKey(row)
	}

	sort.Strings(got)
	sort.Strings(want)

	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func rowKeys(rows [][]string) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = rowKey(row)
	}
	return keys
}

// rowKey joins a row's values with a separator that cannot appear in
// a single field, since fields come from CSV-like source files.
func rowKey(row []string) string {
	return strings.Join(row, "\x1f")
}
