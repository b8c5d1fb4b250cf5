package services

import (
	"strings"

	"abstract-portal/models"
)

// Classify maps the free-text category/presentation-type pair to exactly one
// canonical bucket. The category field wins when present; older submissions
// only carry a presentation type.
//
// Rules are evaluated top to bottom and the first match wins. The
// vocabularies overlap ("PICU Case Cafe Poster" must not land in poster, a
// thesis award is not an award paper), so the order is load-bearing.
// Unmatched input falls into article; no input ever fails to classify.
func Classify(category, presentationType string) models.CategoryBucket {
	text := strings.ToLower(strings.TrimSpace(category))
	if text == "" {
		text = strings.ToLower(strings.TrimSpace(presentationType))
	}

	switch {
	case strings.Contains(text, "award") && !strings.Contains(text, "thesis"):
		return models.BucketAwardPaper
	case strings.Contains(text, "case") && strings.Contains(text, "report"):
		return models.BucketCaseReport
	case strings.Contains(text, "poster") && !strings.Contains(text, "picu"):
		return models.BucketPoster
	case strings.Contains(text, "picu") || strings.Contains(text, "cafe"):
		return models.BucketPICUCafe
	case strings.Contains(text, "innovators") || strings.Contains(text, "thesis") || strings.Contains(text, "dm/drnb"):
		return models.BucketInnovators
	case strings.Contains(text, "imaging") || strings.Contains(text, "radiology") || strings.Contains(text, "clinico"):
		return models.BucketImaging
	case strings.Contains(text, "article") || strings.Contains(text, "original"):
		return models.BucketArticle
	default:
		return models.BucketArticle
	}
}
