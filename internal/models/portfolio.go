package models

import (
	"strings"
	"time"
)

// Portfolio represents a single showcased work in the gallery.
type Portfolio struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:100;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	ImageURL     string    `json:"image_url" gorm:"size:255;not null"`
	Category     string    `json:"category" gorm:"size:50;not null;index"`
	Client       string    `json:"client" gorm:"size:100"`
	ProjectURL   string    `json:"project_url" gorm:"size:255"`
	Technologies string    `json:"-" gorm:"size:255"` // comma-joined
	Featured     bool      `json:"featured" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TechnologyList splits the comma-joined technologies column.
func (p *Portfolio) TechnologyList() []string {
	if p.Technologies == "" {
		return []string{}
	}
	parts := strings.Split(p.Technologies, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ToAPI returns the JSON representation served by the /api routes.
func (p *Portfolio) ToAPI() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"title":        p.Title,
		"description":  p.Description,
		"image_url":    p.ImageURL,
		"category":     p.Category,
		"client":       p.Client,
		"project_url":  p.ProjectURL,
		"technologies": p.TechnologyList(),
		"featured":     p.Featured,
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
