package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

type resourceRepoStub struct {
	resources []models.Resource
}

func (r *resourceRepoStub) List(ctx context.Context, category string) ([]models.Resource, error) {
	items := make([]models.Resource, 0)
	for _, resource := range r.resources {
		if category != "" && resource.Category != category {
			continue
		}
		items = append(items, resource)
	}
	return items, nil
}

func (r *resourceRepoStub) Get(ctx context.Context, id uint) (models.Resource, error) {
	for _, resource := range r.resources {
		if resource.ID == id {
			return resource, nil
		}
	}
	return models.Resource{}, gorm.ErrRecordNotFound
}

func (r *resourceRepoStub) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = uint(len(r.resources) + 1)
	r.resources = append(r.resources, *resource)
	return nil
}

func TestResourceServiceDownloadRecordsActivity(t *testing.T) {
	repo := &resourceRepoStub{resources: []models.Resource{
		{ID: 1, Title: "Go cheatsheet", Category: "cheatsheet", FileURL: "https://cdn.example/go.pdf"},
	}}
	recorder := &recorderStub{}
	svc := NewResourceService(repo, recorder, nil, validator.New(), testLogger())

	resp, err := svc.Download(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/go.pdf", resp.URL)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, models.ActivityResourceDownload, recorder.entries[0].Kind)
	require.Equal(t, uint(8), recorder.entries[0].UserID)
	require.Equal(t, "Go cheatsheet", recorder.entries[0].TargetTitle)
}

func TestResourceServiceDownloadNotFound(t *testing.T) {
	svc := NewResourceService(&resourceRepoStub{}, &recorderStub{}, nil, validator.New(), testLogger())

	_, err := svc.Download(context.Background(), 12, 1)
	require.ErrorIs(t, err, ErrResourceNotFound)
}

func TestResourceServiceDownloadPrefersUploadedFile(t *testing.T) {
	repo := &resourceRepoStub{resources: []models.Resource{
		{ID: 1, Title: "Guide", Category: "guide", FileURL: "https://cdn.example/guide.pdf", DownloadURL: "https://example.com/mirror"},
		{ID: 2, Title: "External", Category: "external", DownloadURL: "https://example.com/tool"},
	}}
	svc := NewResourceService(repo, &recorderStub{}, nil, validator.New(), testLogger())

	resp, err := svc.Download(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/guide.pdf", resp.URL)

	resp, err = svc.Download(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/tool", resp.URL)
}

func TestResourceServiceUploadDetectsMimeType(t *testing.T) {
	repo := &resourceRepoStub{}
	svc := NewResourceService(repo, &recorderStub{}, uploaderStub{url: "https://cdn.example"}, validator.New(), testLogger())

	resp, err := svc.Upload(context.Background(), ResourceUploadRequest{
		Title:    "Template",
		Category: "template",
		FileName: "starter.html",
	}, strings.NewReader("<!DOCTYPE html><html><body>hi</body></html>"))
	require.NoError(t, err)
	require.Contains(t, resp.MimeType, "text/html")
	require.Equal(t, "https://cdn.example/starter.html", repo.resources[0].FileURL)
}

func TestResourceServiceUploadExternalLinkOnly(t *testing.T) {
	repo := &resourceRepoStub{}
	svc := NewResourceService(repo, &recorderStub{}, nil, validator.New(), testLogger())

	resp, err := svc.Upload(context.Background(), ResourceUploadRequest{
		Title:       "Playground",
		Category:    "external",
		DownloadURL: "https://go.dev/play",
	}, nil)
	require.NoError(t, err)
	require.Empty(t, resp.MimeType)
	require.Empty(t, repo.resources[0].FileURL)
	require.Equal(t, "https://go.dev/play", repo.resources[0].DownloadURL)
}

func TestResourceServiceUploadValidatesCategory(t *testing.T) {
	svc := NewResourceService(&resourceRepoStub{}, &recorderStub{}, nil, validator.New(), testLogger())

	_, err := svc.Upload(context.Background(), ResourceUploadRequest{Title: "X", Category: "misc"}, nil)
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}
