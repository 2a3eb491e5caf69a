// internal/domain/models/comment.go
package models

import "time"

// Comment is a forum entry attached to a Project or Insight via ParentID.
// A non-empty ReplyToID links it under another comment with the same
// parent, forming an arbitrary-depth reply tree. Deleting a comment
// removes only that node; replies whose target is gone are treated as
// roots when the tree is rebuilt (see system/commenttree).
type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ParentID  string    `bson:"parent_id" json:"parentId"`
	AuthorID  string    `bson:"author_id" json:"authorId"`
	Text      string    `bson:"text" json:"text"`
	ReplyToID string    `bson:"reply_to_id,omitempty" json:"replyToId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
