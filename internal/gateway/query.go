package gateway

import (
	"slices"
	"strings"

	"github.com/amishk599/aijobradar/internal/model"
)

// europeHubs replaces the "Europe" location in queries.
const europeHubs = "(Berlin OR London OR Paris OR Amsterdam OR Stockholm)"

var siteFilters = map[string]string{
	"LinkedIn":  "site:linkedin.com/jobs",
	"StepStone": "site:stepstone.de/stellen",
	"Xing":      "site:xing.com/jobs",
}

var experienceTerms = map[string]string{
	model.LevelJunior: "entry-level",
	model.LevelMid:    "mid-level",
	model.LevelSenior: "senior",
}

// BuildQuery returns the search query for one platform. Unknown platforms get
// no site filter and unknown experience levels are dropped.
func BuildQuery(params model.SearchParameters, platform string) string {
	var b strings.Builder
	b.WriteString(strings.Join(params.Keywords, " OR "))
	b.WriteString(" jobs")

	locations := strings.Join(params.Locations, " OR ")
	if strings.Contains(locations, "Europe") {
		b.WriteString(" in " + europeHubs)
	} else {
		b.WriteString(" in " + locations)
	}

	if filter, ok := siteFilters[platform]; ok {
		b.WriteString(" " + filter)
	}

	var terms []string
	for _, level := range params.ExperienceLevels {
		if term, ok := experienceTerms[level]; ok {
			terms = append(terms, term)
		}
	}
	if len(terms) > 0 {
		b.WriteString(" " + strings.Join(terms, " OR "))
	}

	if slices.Contains(params.RemotePolicy, model.RemoteFull) {
		b.WriteString(" remote")
	}
	return b.String()
}
