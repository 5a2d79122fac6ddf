package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ForumPostCreateRequest carries the payload for a new discussion post.
type ForumPostCreateRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=general databases fullstack cloud datascience mlai iot cybersecurity help"`
}

// ForumReplyCreateRequest carries the payload for a reply.
type ForumReplyCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

// ForumPostResponse is a serialised discussion post.
type ForumPostResponse struct {
	ID        uint                 `json:"id"`
	Author    string               `json:"author"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Category  string               `json:"category"`
	IsPinned  bool                 `json:"is_pinned"`
	Replies   []ForumReplyResponse `json:"replies,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ForumReplyResponse is a serialised reply.
type ForumReplyResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ForumListResponse wraps a paginated post listing.
type ForumListResponse struct {
	Items      []ForumPostResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewForumPostResponse serialises a post with any preloaded replies.
func NewForumPostResponse(post models.ForumPost) ForumPostResponse {
	resp := ForumPostResponse{
		ID:        post.ID,
		Author:    post.User.Username,
		Title:     post.Title,
		Content:   post.Content,
		Category:  post.Category,
		IsPinned:  post.IsPinned,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	for _, reply := range post.Replies {
		resp.Replies = append(resp.Replies, NewForumReplyResponse(reply))
	}
	return resp
}

// NewForumReplyResponse serialises a reply.
func NewForumReplyResponse(reply models.ForumReply) ForumReplyResponse {
	return ForumReplyResponse{
		ID:        reply.ID,
		PostID:    reply.PostID,
		Author:    reply.User.Username,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}
}
