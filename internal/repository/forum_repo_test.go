package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

func TestForumRepositoryListPostsPinnedFirst(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.ForumPost{}, &models.ForumReply{})
	repo := NewForumRepository(db)

	now := time.Now()
	older := models.ForumPost{UserID: 1, Title: "Older", Content: "a", Category: "general", CreatedAt: now.Add(-2 * time.Hour)}
	newer := models.ForumPost{UserID: 1, Title: "Newer", Content: "b", Category: "general", CreatedAt: now.Add(-time.Hour)}
	pinned := models.ForumPost{UserID: 1, Title: "Pinned", Content: "c", Category: "help", IsPinned: true, CreatedAt: now.Add(-3 * time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&pinned).Error)

	posts, total, err := repo.ListPosts(context.Background(), ForumFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Equal(t, "Pinned", posts[0].Title, "pinned post should lead regardless of age")
	require.Equal(t, "Newer", posts[1].Title)
	require.Equal(t, "Older", posts[2].Title)

	filtered, total, err := repo.ListPosts(context.Background(), ForumFilter{Category: "help"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)

	paged, total, err := repo.ListPosts(context.Background(), ForumFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}

func TestForumRepositoryCreateReplyRequiresPost(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.ForumPost{}, &models.ForumReply{})
	repo := NewForumRepository(db)

	err := repo.CreateReply(context.Background(), &models.ForumReply{PostID: 404, UserID: 1, Content: "hi"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	post := models.ForumPost{UserID: 1, Title: "T", Content: "c", Category: "general"}
	require.NoError(t, db.Create(&post).Error)

	reply := models.ForumReply{PostID: post.ID, UserID: 1, Content: "hi"}
	require.NoError(t, repo.CreateReply(context.Background(), &reply))
	require.NotZero(t, reply.ID)

	stored, err := repo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, stored.Replies, 1)
}
