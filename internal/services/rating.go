package services

import "github.com/tutorlane/marketplace-service/internal/models"

// applyDerivedRating fills the computed rating fields from the tutor's
// loaded reviews. The mean is 0 when there are no reviews.
func applyDerivedRating(tutor *models.Tutor) {
	tutor.ReviewsCount = len(tutor.Reviews)
	if tutor.ReviewsCount == 0 {
		tutor.AvgRating = 0
		return
	}

	var sum int
	for _, review := range tutor.Reviews {
		sum += review.Rating
	}
	tutor.AvgRating = float64(sum) / float64(tutor.ReviewsCount)
}
