package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/observability"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

var (
	// ErrContactSpam indicates the honeypot field was filled.
	ErrContactSpam = errors.New("contact submission flagged as spam")
	// ErrContactDuplicate indicates a submission with the same checksum exists recently.
	ErrContactDuplicate = errors.New("duplicate contact submission")
	// ErrContactNotFound indicates the message does not exist.
	ErrContactNotFound = errors.New("contact message not found")
)

// ContactDelivery defines a transport to notify operators of new messages.
type ContactDelivery interface {
	Deliver(ctx context.Context, message models.ContactMessage) error
}

// ContactService exposes the contact form workflow and the operator-facing
// message management.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
	List(ctx context.Context, onlyUnresolved bool) ([]dto.ContactMessageResponse, error)
	Resolve(ctx context.Context, id uint) error
}

type contactService struct {
	repo      repository.ContactRepository
	cache     *redis.Client
	validator *validator.Validate
	delivery  ContactDelivery
	logger    zerolog.Logger
	dedupeTTL time.Duration
	tracer    trace.Tracer
}

// NewContactService constructs a contact form service.
func NewContactService(repo repository.ContactRepository, cache *redis.Client, validate *validator.Validate, delivery ContactDelivery, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		delivery:  delivery,
		logger:    logger.With().Str("component", "contact_service").Logger(),
		dedupeTTL: 5 * time.Minute,
		tracer:    otel.Tracer("github.com/Ankitkushwaha90/techforge/internal/service/contact"),
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if req.Honeypot != "" {
		span.SetStatus(codes.Error, "honeypot tripped")
		observability.ContactSubmissions().WithLabelValues("spam").Inc()
		return dto.ContactResponse{}, ErrContactSpam
	}

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ContactResponse{}, err
	}

	checksum := computeChecksum(req.Name, req.Email, req.Message)
	span.SetAttributes(attribute.String("contact.checksum", checksum))

	if s.cache != nil {
		key := fmt.Sprintf("contact:dedupe:%s", checksum)
		ok, err := s.cache.SetNX(ctx, key, 1, s.dedupeTTL).Result()
		if err != nil {
			span.RecordError(err)
			return dto.ContactResponse{}, err
		}
		if !ok {
			span.SetStatus(codes.Error, "duplicate submission")
			observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
			return dto.ContactResponse{}, ErrContactDuplicate
		}
	}

	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = models.PriorityMedium
	}

	message := models.ContactMessage{
		ReferenceID: uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:     strings.TrimSpace(req.Subject),
		Message:     strings.TrimSpace(req.Message),
		Priority:    priority,
		Checksum:    checksum,
	}

	if err := s.repo.Create(ctx, &message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		return dto.ContactResponse{}, err
	}

	// Delivery is a courtesy notification; its failure never reaches the
	// submitter.
	if err := s.delivery.Deliver(ctx, message); err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).Str("reference_id", message.ReferenceID).Msg("contact delivery failed")
	}

	observability.ContactSubmissions().WithLabelValues("accepted").Inc()
	s.logger.Info().Str("reference_id", message.ReferenceID).Str("priority", priority).Msg("contact submission stored")
	span.SetStatus(codes.Ok, "stored")

	return dto.ContactResponse{ReferenceID: message.ReferenceID, Status: "received"}, nil
}

func (s *contactService) List(ctx context.Context, onlyUnresolved bool) ([]dto.ContactMessageResponse, error) {
	messages, err := s.repo.List(ctx, onlyUnresolved)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ContactMessageResponse, 0, len(messages))
	for _, message := range messages {
		items = append(items, dto.NewContactMessageResponse(message))
	}
	return items, nil
}

func (s *contactService) Resolve(ctx context.Context, id uint) error {
	err := s.repo.MarkResolved(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContactNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info().Uint("contact_id", id).Msg("contact message resolved")
	return nil
}

func computeChecksum(parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(strings.TrimSpace(strings.ToLower(part))))
		hasher.Write([]byte("|"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
