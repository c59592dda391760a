package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
)

type FeedbackService struct {
	repo ports.FeedbackRepository
	log  zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, log: log}
}

func (s *FeedbackService) Submit(ctx context.Context, caller *domain.Identity, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if err := authorize(caller, policy.FeedbackSubmit, policy.Target{}); err != nil {
		return nil, err
	}
	f := &domain.Feedback{Name: in.Name, Phone: in.Phone, Message: in.Message}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	s.log.Info().Int64("feedback_id", f.ID).Msg("feedback received")
	return f, nil
}

func (s *FeedbackService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Feedback, error) {
	if err := authorize(caller, policy.FeedbackList, policy.Target{}); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

func (s *FeedbackService) MarkRead(ctx context.Context, caller *domain.Identity, id int64, read bool) error {
	if err := authorize(caller, policy.FeedbackUpdate, policy.Target{}); err != nil {
		return err
	}
	if err := s.repo.SetRead(ctx, id, read); err != nil {
		return fmt.Errorf("mark feedback: %w", err)
	}
	return nil
}
