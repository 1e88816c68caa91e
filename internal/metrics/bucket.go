package metrics

import "github.com/vytor/openingroi/internal/models"

// bucketBounds holds the lower bound of every bucket after the first, in
// ascending order. A value equal to a bound belongs to the bucket it opens.
var bucketBounds = []struct {
	lower  float64
	bucket models.RatingBucket
}{
	{1400, models.Bucket1400_1600},
	{1600, models.Bucket1600_1800},
	{1800, models.Bucket1800_2000},
	{2000, models.Bucket2000_2200},
	{2200, models.Bucket2200Plus},
}

// Buckets lists every rating bucket in ascending order.
func Buckets() []models.RatingBucket {
	out := make([]models.RatingBucket, 0, len(bucketBounds)+1)
	out = append(out, models.BucketUnder1400)
	for _, b := range bucketBounds {
		out = append(out, b.bucket)
	}
	return out
}

// BucketFor maps an average rating to its bucket.
func BucketFor(avg float64) models.RatingBucket {
	bucket := models.BucketUnder1400
	for _, b := range bucketBounds {
		if avg < b.lower {
			break
		}
		bucket = b.bucket
	}
	return bucket
}

// BucketForRating maps a single player's rating with the same partition used for games.
func BucketForRating(rating int) models.RatingBucket {
	return BucketFor(float64(rating))
}

// ValidBucket reports whether b is one of the labels returned by Buckets.
func ValidBucket(b models.RatingBucket) bool {
	return bucketIndex(b) >= 0
}

func bucketIndex(b models.RatingBucket) int {
	for i, known := range Buckets() {
		if known == b {
			return i
		}
	}
	return -1
}
