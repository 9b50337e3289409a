package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Subject      string    `gorm:"size:255;not null;index:idx_note_batch;index:idx_note_owner_subject,priority:2" json:"subject"`
	Regulation   string    `gorm:"size:10;not null;default:'R22';index:idx_note_batch" json:"regulation"`
	Year         int       `gorm:"not null;default:2;index:idx_note_batch" json:"year"`
	Semester     int       `gorm:"not null;default:1;index:idx_note_batch" json:"semester"`
	Unit         int       `gorm:"not null" json:"unit"`
	FileURL      string    `gorm:"type:text;not null" json:"fileUrl"`
	UploadedByID uuid.UUID `gorm:"type:uuid;not null;index:idx_note_owner_subject,priority:1" json:"-"`

	UploadedBy *Teacher `gorm:"foreignkey:UploadedByID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// FullFileURL joins base with the stored relative path. Paths that are already
// absolute URLs (remote storage) are returned unchanged.
func (n *Note) FullFileURL(base string) string {
	if strings.HasPrefix(n.FileURL, "http://") || strings.HasPrefix(n.FileURL, "https://") {
		return n.FileURL
	}

	p := strings.ReplaceAll(n.FileURL, `\`, "/")
	if i := strings.Index(p, "/uploads/"); i >= 0 {
		p = "uploads/" + p[i+len("/uploads/"):]
	} else if i := strings.Index(p, "uploads/"); i >= 0 {
		p = "uploads/" + p[i+len("uploads/"):]
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
