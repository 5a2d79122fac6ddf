package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

// ErrResourceNotFound indicates the resource does not exist.
var ErrResourceNotFound = errors.New("resource not found")

// FileUploader stores a file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ResourceUploadRequest carries a new resource asset.
type ResourceUploadRequest struct {
	Title       string `validate:"required,max=200"`
	Description string
	Category    string `validate:"required,oneof=cheatsheet template guide external"`
	DownloadURL string `validate:"omitempty,url"`
	FileName    string
}

// ResourceService exposes the downloadable resource use-cases.
type ResourceService interface {
	List(ctx context.Context, category string) ([]dto.ResourceResponse, error)
	Download(ctx context.Context, id, userID uint) (dto.ResourceDownloadResponse, error)
	Upload(ctx context.Context, req ResourceUploadRequest, file io.Reader) (dto.ResourceResponse, error)
}

type resourceService struct {
	repo      repository.ResourceRepository
	recorder  ActivityRecorder
	uploader  FileUploader
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResourceService constructs the resource service. The uploader is
// optional; without it only external-link resources can be created.
func NewResourceService(repo repository.ResourceRepository, recorder ActivityRecorder, uploader FileUploader, validate *validator.Validate, logger zerolog.Logger) ResourceService {
	return &resourceService{
		repo:      repo,
		recorder:  recorder,
		uploader:  uploader,
		validator: validate,
		logger:    logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) List(ctx context.Context, category string) ([]dto.ResourceResponse, error) {
	resources, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		items = append(items, dto.NewResourceResponse(resource))
	}
	return items, nil
}

// Download resolves the resource address and records a resource_download
// activity for the requesting user.
func (s *resourceService) Download(ctx context.Context, id, userID uint) (dto.ResourceDownloadResponse, error) {
	resource, err := s.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ResourceDownloadResponse{}, ErrResourceNotFound
	}
	if err != nil {
		return dto.ResourceDownloadResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, RecordEntry{
		UserID:      userID,
		Kind:        models.ActivityResourceDownload,
		TargetTitle: resource.Title,
		TargetURL:   resource.Href(),
		Metadata:    map[string]interface{}{"resource_id": resource.ID, "category": resource.Category},
		Related:     &models.RelatedRef{Kind: "resource", ID: resource.ID},
	}); err != nil {
		s.logger.Warn().Err(err).Uint("resource_id", resource.ID).Msg("failed to record resource download")
	}

	return dto.ResourceDownloadResponse{ID: resource.ID, URL: resource.Href()}, nil
}

func (s *resourceService) Upload(ctx context.Context, req ResourceUploadRequest, file io.Reader) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource := models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DownloadURL: req.DownloadURL,
	}

	if file != nil && s.uploader != nil {
		data, err := io.ReadAll(file)
		if err != nil {
			return dto.ResourceResponse{}, err
		}

		resource.MimeType = mimetype.Detect(data).String()

		url, err := s.uploader.Upload(ctx, req.FileName, bytes.NewReader(data))
		if err != nil {
			return dto.ResourceResponse{}, err
		}
		resource.FileURL = url
	}

	if err := s.repo.Create(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	return dto.NewResourceResponse(resource), nil
}
