package dto

import "titlehub/internal/api/models"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=512"`
	Slug string `json:"slug" binding:"required,max=128"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
