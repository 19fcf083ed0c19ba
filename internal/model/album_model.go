package model

import "time"

type Album struct {
	AlbumID     string     `json:"album_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
