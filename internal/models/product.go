// internal/models/product.go
package models

import "time"

// DateLayout is the wire format for product dates.
const DateLayout = "2006-01-02"

type Product struct {
	ID           string `json:"id" gorm:"primaryKey;size:10" validate:"required,min=3,max=10"`
	Name         string `json:"name" gorm:"size:100;not null" validate:"required,min=5,max=100"`
	Description  string `json:"description" gorm:"size:200;not null" validate:"required,min=10,max=200"`
	Logo         string `json:"logo" gorm:"not null" validate:"required"`
	DateRelease  string `json:"date_release" gorm:"size:10;not null" validate:"required,datetime=2006-01-02"`
	DateRevision string `json:"date_revision" gorm:"size:10;not null" validate:"required,datetime=2006-01-02"`
}

// RevisionDate returns the release date shifted by exactly one year, same
// month and day, formatted with DateLayout. Returns "" when release does
// not parse.
func RevisionDate(release string) string {
	t, err := time.Parse(DateLayout, release)
	if err != nil {
		return ""
	}
	return t.AddDate(1, 0, 0).Format(DateLayout)
}
