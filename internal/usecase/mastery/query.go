package mastery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bluemanta7/MantaMind/pkg/filterexpr"
)

var rowSchema = filterexpr.Schema{
	"word":    filterexpr.KindString,
	"state":   filterexpr.KindString,
	"streak":  filterexpr.KindInt,
	"credit":  filterexpr.KindNumber,
	"learned": filterexpr.KindBool,
}

var rowOrder = filterexpr.OrderSchema{
	DefaultPrimary: "word",
	FallbackKey:    "word",
	Fields:         []string{"word", "state", "streak", "credit"},
}

// Query filters rows with a CEL expression and sorts them by orderBy.
// Both arguments may be empty; an empty orderBy sorts by word.
func Query(rows []Row, filter, orderBy string) ([]Row, error) {
	prg, err := filterexpr.Compile(filter, rowSchema)
	if err != nil {
		return nil, err
	}
	ord, err := filterexpr.ParseOrderBy(orderBy, rowOrder)
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		ok, err := prg.Match(r.vars())
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", r.Word, err)
		}
		if ok {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b Row) int {
		if c := compareRows(a, b, ord.PrimaryKey, ord.PrimaryDesc); c != 0 {
			return c
		}
		return compareRows(a, b, ord.SecondaryKey, ord.SecondaryDesc)
	})
	return out, nil
}

func (r Row) vars() map[string]any {
	return map[string]any{
		"word":    r.Word,
		"state":   r.State,
		"streak":  r.Streak,
		"credit":  r.Credit,
		"learned": r.Learned,
	}
}

func compareRows(a, b Row, key string, desc bool) int {
	var c int
	switch key {
	case "word":
		c = strings.Compare(strings.ToLower(a.Word), strings.ToLower(b.Word))
	case "state":
		c = strings.Compare(a.State, b.State)
	case "streak":
		c = cmp.Compare(a.Streak, b.Streak)
	case "credit":
		c = cmp.Compare(a.Credit, b.Credit)
	}
	if desc {
		return -c
	}
	return c
}
