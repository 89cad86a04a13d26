package storage

import (
	"fmt"

	"github.com/lib/pq"
)

// ListingQuery is the structured predicate for listing searches. It is
// built by the transport layer from validated query parameters and mapped
// to SQL here.
type ListingQuery struct {
	// Search is a case-insensitive substring match on the title.
	Search string
	// MinSalary/MaxSalary bound salary inclusively; both nil means no
	// salary filter.
	MinSalary *int64
	MaxSalary *int64
	// Companies filters listings whose company name is in the set.
	Companies []string
	// Location is an exact-match location filter. It comes from the
	// "sort" query parameter, which never reorders results; listings are
	// always returned newest first.
	Location string
	// Offset/Limit implement page*size pagination. Limit <= 0 means
	// unbounded.
	Offset int
	Limit  int
}

// buildListingWhere renders the query's filters as a WHERE fragment with
// positional args, starting at $1.
func buildListingWhere(q ListingQuery) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if q.Search != "" {
		where += fmt.Sprintf(" AND title ILIKE $%d", argIdx)
		args = append(args, "%"+q.Search+"%")
		argIdx++
	}

	if q.MinSalary != nil && q.MaxSalary != nil {
		where += fmt.Sprintf(" AND salary BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, *q.MinSalary, *q.MaxSalary)
		argIdx += 2
	}

	if len(q.Companies) > 0 {
		where += fmt.Sprintf(" AND company_name = ANY($%d)", argIdx)
		args = append(args, pq.Array(q.Companies))
		argIdx++
	}

	if q.Location != "" {
		where += fmt.Sprintf(" AND location = $%d", argIdx)
		args = append(args, q.Location)
		argIdx++
	}

	return where, args
}
