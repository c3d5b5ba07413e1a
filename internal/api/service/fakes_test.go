package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/repository"
)

// In-memory fakes for the repository interfaces so the services can be
// exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.User
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			all = append(all, *u)
		}
	}
	return all, int64(len(all)), nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCodeStore struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{hashes: make(map[string]string)}
}

func (f *fakeCodeStore) Set(_ context.Context, userID, codeHash string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes[userID] = codeHash
	return nil
}

func (f *fakeCodeStore) Get(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash, ok := f.hashes[userID]
	if !ok {
		return "", repository.ErrCodeNotFound
	}
	return hash, nil
}

func (f *fakeCodeStore) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hashes, userID)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	lastTo   string
	lastBody string
	sent     int
	sendErr  error
}

func (f *fakeMailer) Send(to, _, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.lastTo = to
	f.lastBody = body
	f.sent++
	return nil
}

// lastCode extracts the confirmation code from the last mail body.
func (f *fakeMailer) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.Split(f.lastBody, ": ")
	return parts[len(parts)-1]
}

type fakeTitleRepo struct {
	mu     sync.Mutex
	nextID int64
	titles map[int64]*models.Title
	scores map[int64][]int // review scores per title, feeds AverageScores
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[int64]*models.Title), scores: make(map[int64][]int)}
}

func (f *fakeTitleRepo) addTitle(t models.Title) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	f.titles[t.ID] = &t
	return t.ID
}

func (f *fakeTitleRepo) List(_ context.Context, _ repository.TitleFilter, _, _ int) ([]models.Title, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Title
	for _, t := range f.titles {
		all = append(all, *t)
	}
	return all, int64(len(all)), nil
}

func (f *fakeTitleRepo) GetByID(_ context.Context, id int64) (*models.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.titles[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTitleRepo) Create(_ context.Context, t *models.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	clone := *t
	f.titles[t.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) Update(_ context.Context, t *models.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.titles[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *t
	f.titles[t.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.titles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeTitleRepo) AverageScores(_ context.Context, titleIDs []int64) (map[int64]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	averages := make(map[int64]float64)
	for _, id := range titleIDs {
		scores := f.scores[id]
		if len(scores) == 0 {
			continue
		}
		sum := 0
		for _, s := range scores {
			sum += s
		}
		averages[id] = float64(sum) / float64(len(scores))
	}
	return averages, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*models.Review)}
}

func (f *fakeReviewRepo) ListByTitle(_ context.Context, titleID int64, _, _ int) ([]models.Review, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			list = append(list, *r)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, titleID, id int64) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[id]; ok && r.TitleID == titleID {
		clone := *r
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	review.ID = f.nextID
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, titleID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[id]; ok && r.TitleID == titleID {
		delete(f.reviews, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) ExistsByAuthorAndTitle(_ context.Context, authorID string, titleID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*models.Comment)}
}

func (f *fakeCommentRepo) ListByReview(_ context.Context, reviewID int64, _, _ int) ([]models.Comment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			list = append(list, *c)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, reviewID, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comments[id]; ok && c.ReviewID == reviewID {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, reviewID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comments[id]; ok && c.ReviewID == reviewID {
		delete(f.comments, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	categories map[string]*models.Category // by slug
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (f *fakeCategoryRepo) List(_ context.Context, search string, _, _ int) ([]models.Category, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Category
	for _, c := range f.categories {
		if search == "" || c.Name == search {
			all = append(all, *c)
		}
	}
	return all, int64(len(all)), nil
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	clone := *c
	f.categories[c.Slug] = &clone
	return nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.categories[slug]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[slug]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.categories, slug)
	return nil
}

type fakeGenreRepo struct {
	mu     sync.Mutex
	nextID int64
	genres map[string]*models.Genre // by slug
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[string]*models.Genre)}
}

func (f *fakeGenreRepo) List(_ context.Context, search string, _, _ int) ([]models.Genre, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Genre
	for _, g := range f.genres {
		if search == "" || g.Name == search {
			all = append(all, *g)
		}
	}
	return all, int64(len(all)), nil
}

func (f *fakeGenreRepo) Create(_ context.Context, g *models.Genre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g.ID = f.nextID
	clone := *g
	f.genres[g.Slug] = &clone
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.genres[slug]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Genre
	for _, slug := range slugs {
		g, ok := f.genres[slug]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		list = append(list, *g)
	}
	return list, nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.genres[slug]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.genres, slug)
	return nil
}
