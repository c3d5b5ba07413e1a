package dto

import "titlehub/internal/api/models"

type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=512"`
	Slug string `json:"slug" binding:"required,max=128"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
