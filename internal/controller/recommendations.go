package controller

import (
	"context"

	"github.com/theirongolddev/paisa/internal/model"
)

// RecommendationsAPI is the slice of the gateway used for AI advice.
type RecommendationsAPI interface {
	Recommendations(ctx context.Context) (model.Recommendations, error)
}

// Recommendations requests spending advice on demand. The last successful
// result stays available across failed attempts.
type Recommendations struct {
	List[model.Recommendations]
	api  RecommendationsAPI
	opts Options
}

// NewRecommendations returns an Idle recommendations controller.
func NewRecommendations(gw RecommendationsAPI, opts Options) *Recommendations {
	return &Recommendations{api: gw, opts: opts}
}

// Generate asks the backend for fresh advice.
func (c *Recommendations) Generate(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context) ([]model.Recommendations, error) {
		r, err := c.api.Recommendations(ctx)
		if err != nil {
			c.opts.logger().WarnContext(ctx, "recommendations failed", "error", err)
			return nil, err
		}
		return []model.Recommendations{r}, nil
	})
}

// Result returns the last advice, or nil before the first success.
func (c *Recommendations) Result() *model.Recommendations {
	items := c.Items()
	if len(items) == 0 {
		return nil
	}
	r := items[0]
	return &r
}
