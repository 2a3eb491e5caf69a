// internal/app/store/memstore/seed.go
package memstore

import (
	"time"

	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// seed loads the demo dataset used when the memory backend runs without
// a database: three users, two shared projects, one insight, one
// funding opportunity. The "password" credential is for demos only.
func (s *Store) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		// bcrypt with a static cost and short input cannot fail; keep
		// the seed silent rather than plumb an error through New.
		return
	}
	now := time.Now().UTC()

	users := []models.User{
		{
			ID:              "u1",
			Email:           "amir@example.com",
			Name:            "Amir Musema",
			StakeholderType: models.StakeholderIndividual,
			Subtype:         "Professional",
			Country:         "Ethiopia",
			City:            "Addis Ababa",
			FocusAreas:      []string{"Technology and Innovation", "Agriculture and Food Security"},
			About:           "Software engineer passionate about agritech.",
			Role:            models.RoleStandard,
			IsVerified:      true,
		},
		{
			ID:              "u2",
			Email:           "minagri@gov.et",
			Name:            "Federal Ministry of Agriculture",
			StakeholderType: models.StakeholderOrganization,
			Subtype:         "Government Agency",
			Country:         "Ethiopia",
			City:            "Addis Ababa",
			FocusAreas:      []string{"Agriculture and Food Security"},
			About:           "Leading agricultural development in Ethiopia.",
			Role:            models.RolePremium,
			IsVerified:      true,
		},
		{
			ID:              "u3",
			Email:           "jane@example.com",
			Name:            "Jane Doe",
			StakeholderType: models.StakeholderIndividual,
			Subtype:         "Researcher",
			Country:         "Kenya",
			City:            "Nairobi",
			FocusAreas:      []string{"Climate Change and Environmental Sustainability"},
			Role:            models.RoleStandard,
			IsVerified:      true,
		},
	}
	for _, u := range users {
		u.EmailCI = normalize.Email(u.Email)
		u.NameCI = normalize.Fold(u.Name)
		u.PasswordHash = string(hash)
		u.JoinedAt = now
		s.users[u.ID] = u
		s.bump(u.ID)
	}

	projects := []models.Project{
		{
			ID:           "p1",
			Title:        "Urban Farming Initiative",
			Description:  "A project to transform urban rooftops into green vegetable gardens to support local food security and reduce heat islands.",
			ThematicArea: "Agriculture and Food Security",
			Country:      "Ethiopia",
			City:         "Addis Ababa",
			OwnerID:      "u1",
			Status:       models.StatusShared,
			Visibility:   models.VisibilityPublic,
			CreatedAt:    now.Add(-3 * time.Hour),
			UpdatedAt:    now,
		},
		{
			ID:           "p2",
			Title:        "National Soil Health Survey",
			Description:  "Comprehensive survey of soil health across 5 major regions to inform fertilizer policy.",
			ThematicArea: "Agriculture and Food Security",
			Country:      "Ethiopia",
			City:         "National",
			OwnerID:      "u2",
			Status:       models.StatusShared,
			Visibility:   models.VisibilityPublic,
			JoinRequests: []string{"u1"},
			CreatedAt:    now.Add(-90 * time.Minute),
			UpdatedAt:    now,
		},
	}
	for _, p := range projects {
		p.TitleCI = normalize.Fold(p.Title)
		models.EnsureOwnerCollaborator(&p)
		s.projects[p.ID] = p
		s.bump(p.ID)
	}

	insight := models.Insight{
		ID:          "i1",
		Title:       "The Future of Agritech in Africa",
		TitleCI:     normalize.Fold("The Future of Agritech in Africa"),
		Description: "Reflections on how mobile payments and satellite data are revolutionizing smallholder farming.",
		AuthorID:    "u1",
		Status:      models.StatusShared,
		CreatedAt:   now,
	}
	s.insights[insight.ID] = insight
	s.bump(insight.ID)

	funding := models.FundingOpportunity{
		ID:              "f1",
		Title:           "ArifPay Innovation Challenge",
		TitleCI:         normalize.Fold("ArifPay Innovation Challenge"),
		Description:     "Grants for startups working on financial inclusion in rural areas.",
		Deadline:        "2025-12-31",
		Eligibility:     "Registered startups in Ethiopia.",
		ApplicationInfo: "Apply via the portal link.",
		OwnerID:         "u2",
		Status:          models.StatusShared,
		CreatedAt:       now,
	}
	s.funding[funding.ID] = funding
	s.bump(funding.ID)
}
