package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/dto"
	"github.com/hirenow/hirenow-server/internal/api/storage"
)

// buildListingQuery maps the raw query parameters to a structured
// predicate. Malformed optional filters are dropped silently, matching the
// original surface: a bad salaryRange or company value simply applies no
// filter.
func buildListingQuery(req dto.ListListingsRequest) storage.ListingQuery {
	q := storage.ListingQuery{
		Search: strings.TrimSpace(req.Search),
	}

	if min, max, ok := parseSalaryRange(req.SalaryRange); ok {
		q.MinSalary = &min
		q.MaxSalary = &max
	}

	if req.Company != "" {
		var companies []string
		if err := json.Unmarshal([]byte(req.Company), &companies); err == nil && len(companies) > 0 {
			q.Companies = companies
		}
	}

	// "sort" filters by location; "Default" and unrecognized values are
	// no-ops. It does not reorder results.
	switch req.Sort {
	case domain.LocationRemote, domain.LocationOnSite:
		q.Location = req.Sort
	}

	page := req.Page
	if page < 0 {
		page = 0
	}
	if req.Size > 0 {
		q.Limit = req.Size
		q.Offset = page * req.Size
	}

	return q
}

// parseSalaryRange parses a "MIN-MAX" string into an inclusive bound pair.
func parseSalaryRange(s string) (int64, int64, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	min, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	max, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	return min, max, true
}
