package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

func seedCourseWithModule(t *testing.T, repo CatalogRepository) (models.Course, models.CourseModule) {
	t.Helper()
	course := models.Course{Title: "Go Basics", Slug: "go-basics"}
	require.NoError(t, repo.CreateCourse(context.Background(), &course))

	module := models.CourseModule{CourseID: course.ID, Title: "Intro", Position: 1}
	require.NoError(t, repo.CreateModule(context.Background(), &module))
	return course, module
}

func TestCatalogRepositoryUpdateModule(t *testing.T) {
	db := setupTestDB(t, &models.Course{}, &models.CourseModule{}, &models.ModuleContent{})
	repo := NewCatalogRepository(db)

	course, module := seedCourseWithModule(t, repo)

	module.Title = "Getting Started"
	module.Position = 2
	require.NoError(t, repo.UpdateModule(context.Background(), &module))

	reloaded, err := repo.GetModule(context.Background(), course.ID, module.ID)
	require.NoError(t, err)
	require.Equal(t, "Getting Started", reloaded.Title)
	require.Equal(t, uint(2), reloaded.Position)
}

func TestCatalogRepositoryDeleteModuleScopedToCourse(t *testing.T) {
	db := setupTestDB(t, &models.Course{}, &models.CourseModule{}, &models.ModuleContent{})
	repo := NewCatalogRepository(db)

	course, module := seedCourseWithModule(t, repo)

	// A wrong course id never deletes another course's module.
	err := repo.DeleteModule(context.Background(), course.ID+1, module.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteModule(context.Background(), course.ID, module.ID))

	_, err = repo.GetModule(context.Background(), course.ID, module.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.DeleteModule(context.Background(), course.ID, module.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogRepositoryContentLifecycle(t *testing.T) {
	db := setupTestDB(t, &models.Course{}, &models.CourseModule{}, &models.ModuleContent{})
	repo := NewCatalogRepository(db)

	_, module := seedCourseWithModule(t, repo)

	content := models.ModuleContent{ModuleID: module.ID, Title: "Snippet", CodeLanguage: "go", Position: 1}
	require.NoError(t, repo.CreateContent(context.Background(), &content))

	content.Title = "Revised snippet"
	require.NoError(t, repo.UpdateContent(context.Background(), &content))

	contents, err := repo.ListContents(context.Background(), module.ID)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	require.Equal(t, "Revised snippet", contents[0].Title)

	err = repo.DeleteContent(context.Background(), module.ID+1, content.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteContent(context.Background(), module.ID, content.ID))

	contents, err = repo.ListContents(context.Background(), module.ID)
	require.NoError(t, err)
	require.Empty(t, contents)
}
