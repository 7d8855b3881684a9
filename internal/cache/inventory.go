package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	CommentPageKeyPrefix = "comments:%s:%d:p%d"
	ReplyPageKeyPrefix   = "replies:%d:p%d"
)

const (
	UserTTL        = 5 * time.Minute
	CommentPageTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// CommentPageKey identifies one page of a top-level comment list. The key
// carries root type, root ID and page so sibling lists never collide.
func CommentPageKey(rootType string, rootID uint, page int) string {
	return fmt.Sprintf(CommentPageKeyPrefix, rootType, rootID, page)
}

// ReplyPageKey identifies one page of a comment's reply list.
func ReplyPageKey(parentID uint, page int) string {
	return fmt.Sprintf(ReplyPageKeyPrefix, parentID, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateCommentPages drops every cached page of the top-level comment
// list for the given root. Mutation handlers call this before responding so
// the next read refetches.
func InvalidateCommentPages(ctx context.Context, rootType string, rootID uint) {
	invalidatePattern(ctx, fmt.Sprintf("comments:%s:%d:p*", rootType, rootID))
}

// InvalidateReplyPages drops every cached page of a comment's reply list.
func InvalidateReplyPages(ctx context.Context, parentID uint) {
	invalidatePattern(ctx, fmt.Sprintf("replies:%d:p*", parentID))
}

func invalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
