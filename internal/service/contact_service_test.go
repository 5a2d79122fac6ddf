package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
)

type contactRepoStub struct {
	stored []models.ContactMessage
}

func (r *contactRepoStub) Create(ctx context.Context, message *models.ContactMessage) error {
	message.ID = uint(len(r.stored) + 1)
	r.stored = append(r.stored, *message)
	return nil
}

func (r *contactRepoStub) List(ctx context.Context, onlyUnresolved bool) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	for _, message := range r.stored {
		if onlyUnresolved && message.IsResolved {
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (r *contactRepoStub) MarkResolved(ctx context.Context, id uint) error {
	for i, message := range r.stored {
		if message.ID == id {
			r.stored[i].IsResolved = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type failingDelivery struct{}

func (failingDelivery) Deliver(ctx context.Context, message models.ContactMessage) error {
	return context.DeadlineExceeded
}

func validContactRequest() dto.ContactRequest {
	return dto.ContactRequest{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Subject: "Question",
		Message: "How do I enroll?",
	}
}

func TestContactServiceSubmitStoresMessage(t *testing.T) {
	repo := &contactRepoStub{}
	svc := NewContactService(repo, nil, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	resp, err := svc.Submit(context.Background(), validContactRequest())
	require.NoError(t, err)
	require.Equal(t, "received", resp.Status)
	require.NotEmpty(t, resp.ReferenceID)
	require.Len(t, repo.stored, 1)
	require.Equal(t, models.PriorityMedium, repo.stored[0].Priority, "priority defaults to medium")
	require.NotEmpty(t, repo.stored[0].Checksum)
}

func TestContactServiceHoneypotRejectsSilently(t *testing.T) {
	repo := &contactRepoStub{}
	svc := NewContactService(repo, nil, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	req := validContactRequest()
	req.Honeypot = "http://spam.example"

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrContactSpam)
	require.Empty(t, repo.stored, "spam is never persisted")
}

func TestContactServiceDeduplicatesSubmissions(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := &contactRepoStub{}
	svc := NewContactService(repo, redisClient, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	_, err = svc.Submit(context.Background(), validContactRequest())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validContactRequest())
	require.ErrorIs(t, err, ErrContactDuplicate)
	require.Len(t, repo.stored, 1)

	// A different message body is a fresh submission.
	other := validContactRequest()
	other.Message = "Different question"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)
	require.Len(t, repo.stored, 2)
}

func TestContactServiceDeliveryFailureDoesNotSurface(t *testing.T) {
	repo := &contactRepoStub{}
	svc := NewContactService(repo, nil, validator.New(), failingDelivery{}, testLogger())

	resp, err := svc.Submit(context.Background(), validContactRequest())
	require.NoError(t, err)
	require.Equal(t, "received", resp.Status)
	require.Len(t, repo.stored, 1)
}

func TestContactServiceResolveMarksMessage(t *testing.T) {
	repo := &contactRepoStub{}
	svc := NewContactService(repo, nil, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	first, err := svc.Submit(context.Background(), validContactRequest())
	require.NoError(t, err)

	other := validContactRequest()
	other.Message = "Second question"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(context.Background(), repo.stored[0].ID))
	require.True(t, repo.stored[0].IsResolved)

	unresolved, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	require.NotEqual(t, first.ReferenceID, unresolved[0].ReferenceID)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestContactServiceResolveMissingMessage(t *testing.T) {
	svc := NewContactService(&contactRepoStub{}, nil, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	require.ErrorIs(t, svc.Resolve(context.Background(), 42), ErrContactNotFound)
}

func TestContactServiceValidation(t *testing.T) {
	svc := NewContactService(&contactRepoStub{}, nil, validator.New(), NewLogContactDelivery(testLogger()), testLogger())

	req := validContactRequest()
	req.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}
