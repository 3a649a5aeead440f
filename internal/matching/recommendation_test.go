package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docuflow/internal/domain"
)

func TestRecommendationThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  domain.Recommendation
	}{
		{100, domain.RecommendationStrongYes},
		{90, domain.RecommendationStrongYes},
		{89, domain.RecommendationYes},
		{75, domain.RecommendationYes},
		{74, domain.RecommendationMaybe},
		{50, domain.RecommendationMaybe},
		{49, domain.RecommendationNo},
		{25, domain.RecommendationNo},
		{24, domain.RecommendationStrongNo},
		{0, domain.RecommendationStrongNo},
	}

	for _, tt := range cases {
		assert.Equal(t, tt.want, recommendationFor(tt.score), "score %d", tt.score)
	}
}
