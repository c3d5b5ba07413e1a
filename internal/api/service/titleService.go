package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/repository"
)

// TitleInput is the write-side payload: category and genres arrive as slug
// references, never as nested objects.
type TitleInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// TitleUpdate carries partial updates; nil fields stay untouched.
type TitleUpdate struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// TitleWithRating pairs a title with its derived rating: the arithmetic
// mean of its review scores, nil when it has no reviews.
type TitleWithRating struct {
	models.Title
	Rating *float64
}

var ErrYearOutOfRange = errors.New("year must be between 0 and the current year")

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]TitleWithRating, int64, error)
	Get(ctx context.Context, id int64) (*TitleWithRating, error)
	Create(ctx context.Context, input TitleInput) (*TitleWithRating, error)
	Update(ctx context.Context, id int64, input TitleUpdate) (*TitleWithRating, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]TitleWithRating, int64, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	averages, err := s.titleRepo.AverageScores(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]TitleWithRating, 0, len(titles))
	for _, t := range titles {
		result = append(result, withRating(t, averages))
	}
	return result, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*TitleWithRating, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	averages, err := s.titleRepo.AverageScores(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	tr := withRating(*title, averages)
	return &tr, nil
}

func (s *titleService) Create(ctx context.Context, input TitleInput) (*TitleWithRating, error) {
	if input.Year < 0 || input.Year > time.Now().Year() {
		return nil, ErrYearOutOfRange
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if err := s.resolveCategory(ctx, title, input.CategorySlug); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, input TitleUpdate) (*TitleWithRating, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		if *input.Year < 0 || *input.Year > time.Now().Year() {
			return nil, ErrYearOutOfRange
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		if err := s.resolveCategory(ctx, title, input.CategorySlug); err != nil {
			return nil, err
		}
	}
	if input.GenreSlugs != nil {
		genres, err := s.resolveGenres(ctx, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return notFound(s.titleRepo.Delete(ctx, id))
}

func (s *titleService) resolveCategory(ctx context.Context, title *models.Title, slug *string) error {
	if slug == nil || *slug == "" {
		return nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownCategory
		}
		return err
	}
	title.CategoryID = &category.ID
	title.Category = category
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownGenre
		}
		return nil, err
	}
	return genres, nil
}

func withRating(t models.Title, averages map[int64]float64) TitleWithRating {
	tr := TitleWithRating{Title: t}
	if avg, ok := averages[t.ID]; ok {
		tr.Rating = &avg
	}
	return tr
}
