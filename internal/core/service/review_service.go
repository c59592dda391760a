package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
)

type ReviewService struct {
	repo ports.ReviewRepository
	log  zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

// List shows approved reviews to everyone and the whole moderation queue to
// admins.
func (s *ReviewService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Review, error) {
	onlyApproved := true
	if caller.IsAdmin() {
		if err := authorize(caller, policy.ReviewListAll, policy.Target{}); err != nil {
			return nil, err
		}
		onlyApproved = false
	} else if err := authorize(caller, policy.ReviewListPublic, policy.Target{}); err != nil {
		return nil, err
	}

	reviews, err := s.repo.List(ctx, onlyApproved)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Create stores a review awaiting moderation.
func (s *ReviewService) Create(ctx context.Context, caller *domain.Identity, in ports.CreateReviewInput) (*domain.Review, error) {
	if err := authorize(caller, policy.ReviewCreate, policy.Target{}); err != nil {
		return nil, err
	}

	r := &domain.Review{
		UserID:  caller.UserID,
		Author:  in.Author,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().Int64("review_id", r.ID).Int64("user_id", caller.UserID).Msg("review submitted")
	return r, nil
}

// Moderate approves or unapproves a review.
func (s *ReviewService) Moderate(ctx context.Context, caller *domain.Identity, id int64, approved bool) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, policy.ReviewModerate, policy.Owner(r.UserID)); err != nil {
		return err
	}
	if err := s.repo.SetApproved(ctx, id, approved, nil); err != nil {
		return fmt.Errorf("moderate review: %w", err)
	}

	s.log.Info().Int64("review_id", id).Bool("approved", approved).Msg("review moderated")
	return nil
}

// Withdraw soft-deletes a review by withdrawing its approval.
func (s *ReviewService) Withdraw(ctx context.Context, caller *domain.Identity, id int64) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, policy.ReviewWithdraw, policy.Owner(r.UserID)); err != nil {
		return err
	}

	var ownerID *int64
	if !caller.IsAdmin() {
		uid := caller.UserID
		ownerID = &uid
	}
	if err := s.repo.SetApproved(ctx, id, false, ownerID); err != nil {
		return fmt.Errorf("withdraw review: %w", err)
	}

	s.log.Info().Int64("review_id", id).Int64("user_id", caller.UserID).Msg("review withdrawn")
	return nil
}
