package models

import "time"

// RatingBucket labels a half-open range of average player rating. The zero value
// stands for "all ratings" wherever a bucket filter is optional.
type RatingBucket string

const (
	AllRatings      RatingBucket = ""
	BucketUnder1400 RatingBucket = "<1400"
	Bucket1400_1600 RatingBucket = "1400-1600"
	Bucket1600_1800 RatingBucket = "1600-1800"
	Bucket1800_2000 RatingBucket = "1800-2000"
	Bucket2000_2200 RatingBucket = "2000-2200"
	Bucket2200Plus  RatingBucket = "2200+"
)

// OpeningMetrics is the performance of one opening, optionally restricted to a
// rating bucket. Field names are part of the output contract.
type OpeningMetrics struct {
	OpeningCode      string       `json:"openingCode"`
	OpeningName      string       `json:"openingName"`
	RatingBucket     RatingBucket `json:"ratingBucket,omitempty"`
	TotalGames       int          `json:"totalGames"`
	Wins             int          `json:"wins"`
	Draws            int          `json:"draws"`
	Losses           int          `json:"losses"`
	WinRate          float64      `json:"winRate"`
	DrawRate         float64      `json:"drawRate"`
	LossRate         float64      `json:"lossRate"`
	ExpectedReturn   float64      `json:"expectedReturn"`
	Volatility       float64      `json:"volatility"`
	SharpeRatio      float64      `json:"sharpeRatio"`
	ROI              float64      `json:"roi"`
	InformationRatio float64      `json:"informationRatio"`
}

// MetricSnapshot is a persisted copy of a metrics table.
type MetricSnapshot struct {
	ID        int64            `json:"id"`
	Label     string           `json:"label"`
	GameCount int              `json:"game_count"`
	CreatedAt time.Time        `json:"created_at"`
	Rows      []OpeningMetrics `json:"rows,omitempty"`
}

// BucketSummary counts the games of one rating bucket.
type BucketSummary struct {
	Bucket RatingBucket `json:"bucket"`
	Games  int          `json:"games"`
}
