package service

import (
	"sort"

	"github.com/chrisueda/sakewalk/internal/model"
)

// Top-rated listing bounds
const (
	TopRatedMinReviews = 2
	TopRatedLimit      = 10
)

// sortTagCounts orders tag counts by descending count. The sort is stable so
// ties keep the order the store returned them in (first seen first).
func sortTagCounts(tags []model.TagCount) []model.TagCount {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	return tags
}

// rankTopRated keeps sakes with at least minReviews reviews, computes the
// arithmetic mean rating of each, and returns them ordered by descending
// mean, truncated to limit. The mean is an IEEE-754 double with no rounding
// before sort or output; equal means keep their incoming order.
func rankTopRated(rows []*model.SakeWithRatings, minReviews, limit int) []*model.RatedSake {
	ranked := make([]*model.RatedSake, 0, len(rows))
	for _, row := range rows {
		if row.Sake == nil || len(row.Ratings) <= minReviews-1 {
			continue
		}
		sum := 0
		for _, rating := range row.Ratings {
			sum += rating
		}
		ranked = append(ranked, &model.RatedSake{
			Sake:          row.Sake,
			AverageRating: float64(sum) / float64(len(row.Ratings)),
			ReviewCount:   len(row.Ratings),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
