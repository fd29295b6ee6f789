package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeFoodName trims and title-cases a donation's food name so point
// reasons and listings read consistently ("  leftover rice " → "Leftover
// Rice").
func NormalizeFoodName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// DonationPhotoKey builds the R2 object key for a donation photo, e.g.
// "donations/leftover-rice-6f1c....jpg".
func DonationPhotoKey(foodName, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("donations/%s-%s%s", slug.Make(foodName), uuid.NewString(), ext)
}

// ProofPhotoKey builds the R2 object key for a distribution proof photo.
func ProofPhotoKey(requestID, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("proofs/%s-%s%s", slug.Make(requestID), uuid.NewString(), ext)
}
