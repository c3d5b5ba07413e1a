package dto

import (
	"titlehub/internal/api/service"
)

// CreateTitleDTO takes category and genres as slug references.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=1024"`
	Year        int      `json:"year" binding:"gte=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleDTO is a partial update; omitted fields stay untouched.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=1024"`
	Year        *int      `json:"year" binding:"omitempty,gte=0"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleResponse is the read shape: full nested category and genre objects
// plus the derived rating, null when the title has no reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

func TitleFromModel(t service.TitleWithRating) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	if t.Category != nil {
		category := CategoryFromModel(*t.Category)
		resp.Category = &category
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	return resp
}
