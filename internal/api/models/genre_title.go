package models

// explicit join model for the titles<->genres many-to-many so the pair
// carries its own unique constraint
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"not null;uniqueIndex:idx_genre_title_pair"`
	GenreID int64 `json:"genre_id" gorm:"not null;uniqueIndex:idx_genre_title_pair"`

	// associations; deleting either side deletes the link row
	Title Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Genre Genre `json:"-" gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE;"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
