package services

import (
	"abstract-portal/models"
)

// BuildStatistics derives the dashboard snapshot from the full abstract set.
// Pure function, recomputed on every fetch; nothing is cached because admins
// act on live counts. An abstract with a missing or unknown status counts as
// pending; classification never drops a record.
func BuildStatistics(abstracts []models.Abstract) models.Statistics {
	stats := models.Statistics{
		ByCategory: make(map[models.CategoryBucket]*models.StatusCounts),
	}
	for _, bucket := range models.AllBuckets() {
		stats.ByCategory[bucket] = &models.StatusCounts{}
	}

	for i := range abstracts {
		a := &abstracts[i]
		stats.Total++

		counts := stats.ByCategory[Classify(a.Category, a.PresentationType)]
		counts.Total++

		switch a.EffectiveStatus() {
		case models.StatusApproved:
			stats.Approved++
			counts.Approved++
		case models.StatusRejected:
			stats.Rejected++
			counts.Rejected++
		case models.StatusFinalSubmitted:
			stats.FinalSubmitted++
		default:
			stats.Pending++
			counts.Pending++
		}
	}

	return stats
}
