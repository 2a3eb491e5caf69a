// internal/domain/models/funding.go
package models

import "time"

// FundingOpportunity is a funding announcement. Creation requires an
// effective role of Premium or Admin, enforced server-side.
type FundingOpportunity struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	Title           string        `bson:"title" json:"title"`
	TitleCI         string        `bson:"title_ci" json:"-"`
	Description     string        `bson:"description" json:"description"`
	Deadline        string        `bson:"deadline" json:"deadline"` // ISO date, informational
	Eligibility     string        `bson:"eligibility" json:"eligibility"`
	ApplicationInfo string        `bson:"application_info" json:"applicationInfo"`
	OwnerID         string        `bson:"owner_id" json:"ownerId"`
	Status          ContentStatus `bson:"status" json:"status"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
}
