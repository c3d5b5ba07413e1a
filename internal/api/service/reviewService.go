package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/repository"
)

// ReviewUpdate carries partial updates; nil fields stay untouched.
type ReviewUpdate struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	// Create rejects a second review by the same author for the same
	// title. The check only runs here, never on update, so authors can
	// still edit their existing review.
	Create(ctx context.Context, actor *models.User, titleID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, input ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

// requireTitle resolves the ancestor title; a missing ancestor is a 404
// regardless of whether the child exists.
func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, text string, score int) (*models.Review, error) {
	if score < 1 || score > 10 {
		return nil, ErrScoreOutOfRange
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		AuthorID: actor.ID,
		TitleID:  titleID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the unique (author_id, title_id) index catches the race two
		// concurrent creates leave open past the check above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, input ReviewUpdate) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != actor.ID && !actor.IsPrivileged() {
		return nil, ErrForbidden
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		if *input.Score < 1 || *input.Score > 10 {
			return nil, ErrScoreOutOfRange
		}
		review.Score = *input.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if review.AuthorID != actor.ID && !actor.IsPrivileged() {
		return ErrForbidden
	}
	return notFound(s.reviewRepo.Delete(ctx, titleID, reviewID))
}
