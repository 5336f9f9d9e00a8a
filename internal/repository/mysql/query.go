package mysql

import (
	"strings"

	"github.com/JJ00428/market-api/internal/repository"
	"gorm.io/gorm"
)

// filter keys may carry an operator suffix, e.g. "price__gte". Anything not
// listed maps to plain equality.
var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// applyListQuery shapes a listing query: whitelisted field filters, sort
// keys ("-price" sorts descending), field projection, and page/limit
// pagination. Unknown fields are ignored rather than rejected, matching the
// lenient query-string behavior of the HTTP surface.
func applyListQuery(db *gorm.DB, q repository.ListQuery, columns map[string]bool) *gorm.DB {
	for key, value := range q.Filters {
		field, op := key, "="
		if i := strings.LastIndex(key, "__"); i > 0 {
			if sym, ok := operators[key[i+2:]]; ok {
				field, op = key[:i], sym
			}
		}
		if !columns[field] {
			continue
		}
		db = db.Where(field+" "+op+" ?", value)
	}

	for _, key := range q.Sort {
		desc := strings.HasPrefix(key, "-")
		field := strings.TrimPrefix(key, "-")
		if !columns[field] {
			continue
		}
		if desc {
			db = db.Order(field + " DESC")
		} else {
			db = db.Order(field)
		}
	}

	if len(q.Fields) > 0 {
		var selected []string
		for _, f := range q.Fields {
			if columns[f] {
				selected = append(selected, f)
			}
		}
		if len(selected) > 0 {
			// id is always selected so associations keep loading
			selected = append(selected, "id")
			db = db.Select(selected)
		}
	}

	return db.Offset(q.Offset()).Limit(q.LimitOrDefault())
}
