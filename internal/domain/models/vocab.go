// internal/domain/models/vocab.go
package models

// Reference vocabularies used for input validation and form options.
// These mirror the values the browser client presents.

// ThematicAreas are the subject-domain tags for projects and insights.
var ThematicAreas = []string{
	"Agriculture and Food Security",
	"Biodiversity Conservation",
	"Climate Change and Environmental Sustainability",
	"Economic Growth and Inequality",
	"Education",
	"Gender Equality",
	"Governance and Anti-corruption",
	"Health and Well-being",
	"Housing Solutions",
	"Human Rights and Social Justice",
	"Infrastructure Development",
	"Technology and Innovation",
	"Unemployment",
	"Water, Sanitation, and Hygiene (WASH)",
	"Other",
}

// IsValidThematicArea checks a tag against the reference list.
func IsValidThematicArea(area string) bool {
	for _, a := range ThematicAreas {
		if a == area {
			return true
		}
	}
	return false
}

// StakeholderSubtypes lists the free-text subtype suggestions per
// stakeholder type. Subtypes outside these lists are accepted; the lists
// exist for clients building dropdowns.
var StakeholderSubtypes = map[StakeholderType][]string{
	StakeholderIndividual:   {"Student", "Professional", "Researcher", "Activist", "Other"},
	StakeholderOrganization: {"NGO", "Private Company", "Government Agency", "Educational Inst.", "Other"},
	StakeholderGroup:        {"Community Group", "Coalition", "Network", "Association", "Other"},
}
