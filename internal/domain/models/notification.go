// internal/domain/models/notification.go
package models

import "time"

// NotificationKind categorizes in-app notifications.
type NotificationKind string

const (
	NotifyJoinRequest NotificationKind = "join_request"
	NotifyInvite      NotificationKind = "invite"
	NotifyApproval    NotificationKind = "approval"
	NotifyRejection   NotificationKind = "rejection"
	NotifyComment     NotificationKind = "comment"
)

// Notification is an in-app notification delivered to a single user.
// Clients poll for these; RelatedID points at the entity the event
// concerns (project, insight, funding item, or comment parent).
type Notification struct {
	ID        string           `bson:"_id,omitempty" json:"id"`
	UserID    string           `bson:"user_id" json:"userId"`
	Kind      NotificationKind `bson:"kind" json:"kind"`
	Message   string           `bson:"message" json:"message"`
	RelatedID string           `bson:"related_id,omitempty" json:"relatedId,omitempty"`
	IsRead    bool             `bson:"is_read" json:"isRead"`
	CreatedAt time.Time        `bson:"created_at" json:"createdAt"`
}
