package models

// CategoryBucket is the canonical classification derived from the free-text
// category/presentation-type field. It is computed at read time, never stored.
type CategoryBucket string

const (
	BucketArticle    CategoryBucket = "article"
	BucketAwardPaper CategoryBucket = "award_paper"
	BucketCaseReport CategoryBucket = "case_report"
	BucketPoster     CategoryBucket = "poster"
	BucketPICUCafe   CategoryBucket = "picu_cafe"
	BucketInnovators CategoryBucket = "innovators"
	BucketImaging    CategoryBucket = "imaging"
)

// AllBuckets lists every canonical bucket; the statistics snapshot always
// carries an entry for each.
func AllBuckets() []CategoryBucket {
	return []CategoryBucket{
		BucketArticle,
		BucketAwardPaper,
		BucketCaseReport,
		BucketPoster,
		BucketPICUCafe,
		BucketInnovators,
		BucketImaging,
	}
}

type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Statistics is the on-demand snapshot shown on the admin dashboard. It is
// recomputed from the full abstract set on every fetch.
type Statistics struct {
	Total          int                              `json:"total"`
	Pending        int                              `json:"pending"`
	Approved       int                              `json:"approved"`
	Rejected       int                              `json:"rejected"`
	FinalSubmitted int                              `json:"final_submitted"`
	ByCategory     map[CategoryBucket]*StatusCounts `json:"by_category"`
}
