// internal/domain/models/insight.go
package models

import "time"

// Insight is a single-author opinion or idea post. It shares the content
// moderation lifecycle with Project but has no collaborators.
type Insight struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	TitleCI     string        `bson:"title_ci" json:"-"`
	Description string        `bson:"description" json:"description"`
	AuthorID    string        `bson:"author_id" json:"authorId"`
	Status      ContentStatus `bson:"status" json:"status"`
	Attachments []Attachment  `bson:"attachments,omitempty" json:"attachments"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}
