package calc

import (
	"math"

	"github.com/Rakhulsr/go-marketplace/app/models"
)

type RatingSummary struct {
	Average float64
	Count   int
}

// SummarizeRatings averages the full rating set, rounded to one decimal.
func SummarizeRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	total := 0
	for _, r := range ratings {
		total += r
	}

	avg := float64(total) / float64(len(ratings))
	return RatingSummary{
		Average: math.Round(avg*10) / 10,
		Count:   len(ratings),
	}
}

func ApplyRatingSummary(p *models.Product, summary RatingSummary) {
	p.AverageRating = summary.Average
	p.RatingCount = summary.Count
	p.ReviewCount = summary.Count
}
