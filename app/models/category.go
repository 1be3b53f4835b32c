package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug         string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	ParentID     *string   `gorm:"size:36;index" json:"parentId,omitempty"`
	Parent       *Category `gorm:"foreignKey:ParentID" json:"-"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	DisplayOrder int       `gorm:"not null" json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
