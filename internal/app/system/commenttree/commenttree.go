// Package commenttree rebuilds threaded reply trees from the flat
// comment list stored per parent entity.
//
// Comments are stored flat; nesting lives only in reply_to_id. Deleting
// a comment removes just that node, so a reply can reference an id that
// no longer exists. Build promotes such orphans to roots instead of
// dropping the subtree.
package commenttree

import (
	"errors"

	"github.com/ponsectors/ponsectors/internal/domain/models"
)

var (
	// ErrReplyTargetMissing means the reply_to_id does not name a
	// comment in this thread.
	ErrReplyTargetMissing = errors.New("reply target does not exist")

	// ErrReplyWrongThread means the reply target lives under a
	// different parent entity.
	ErrReplyWrongThread = errors.New("reply target belongs to a different thread")
)

// Node is one comment plus its nested replies, oldest first.
type Node struct {
	models.Comment
	Replies []*Node `json:"replies"`
}

// Build assembles the reply tree from a flat thread. Input order
// (oldest first) is preserved among siblings. Replies whose target is
// gone become roots.
func Build(flat []models.Comment) []*Node {
	byID := make(map[string]*Node, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &Node{Comment: flat[i], Replies: []*Node{}}
	}

	roots := make([]*Node, 0, len(flat))
	for i := range flat {
		n := byID[flat[i].ID]
		if n.ReplyToID == "" {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[n.ReplyToID]
		if !ok || parent == n {
			// Orphan (target deleted) or self-reference: promote.
			roots = append(roots, n)
			continue
		}
		parent.Replies = append(parent.Replies, n)
	}
	return roots
}

// ValidateReply checks a new comment's reply_to_id against the thread
// it is being added to. A comment with no reply target is always valid.
func ValidateReply(thread []models.Comment, parentID, replyToID string) error {
	if replyToID == "" {
		return nil
	}
	for _, c := range thread {
		if c.ID == replyToID {
			if c.ParentID != parentID {
				return ErrReplyWrongThread
			}
			return nil
		}
	}
	return ErrReplyTargetMissing
}
