package model

import (
	"fmt"
	"time"
)

type BlogStatus string

const (
	StatusDraft       BlogStatus = "draft"
	StatusUnpublished BlogStatus = "unpublished"
	StatusPublished   BlogStatus = "published"
)

// BlogStatuses lists every status in form display order.
func BlogStatuses() []BlogStatus {
	return []BlogStatus{StatusDraft, StatusUnpublished, StatusPublished}
}

func ParseBlogStatus(raw string) (BlogStatus, error) {
	status := BlogStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown blog status %q", raw)
	}
	return status, nil
}

func (s BlogStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusUnpublished, StatusPublished:
		return true
	}
	return false
}

// Toggled returns the status reached by the publish toggle. Draft and
// unpublished both move to published; published moves to unpublished.
func (s BlogStatus) Toggled() BlogStatus {
	switch s {
	case StatusPublished:
		return StatusUnpublished
	case StatusDraft, StatusUnpublished:
		return StatusPublished
	}
	return s
}

func (s BlogStatus) Label() string {
	switch s {
	case StatusDraft:
		return "DRAFT"
	case StatusUnpublished:
		return "UNPUBLISHED"
	case StatusPublished:
		return "PUBLISHED"
	}
	return string(s)
}

type Blog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:300;not null" json:"title"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Status    BlogStatus `gorm:"type:varchar(16);not null;default:draft;index" json:"status"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	CreatedBy uint  `gorm:"not null;index" json:"created_by"`
	Author    *User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
}

func (b *Blog) OwnedBy(userID uint) bool {
	return b != nil && userID != 0 && b.CreatedBy == userID
}
