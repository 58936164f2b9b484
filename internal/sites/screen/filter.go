package screen

import (
	"strings"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// Filter keeps the sites whose name contains query, ignoring case. A blank
// query keeps everything. The input slice is not modified.
func Filter(sites []domain.ConstructionSite, query string) []domain.ConstructionSite {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.ConstructionSite, 0, len(sites))
	for _, s := range sites {
		if q == "" || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}
