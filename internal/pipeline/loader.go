package pipeline

import (
	"context"

	"github.com/couchcryptid/accident-severity-etl/internal/domain"
)

// MultiLoader loads into each loader in order and stops at the first failure.
type MultiLoader []Loader

func (m MultiLoader) Load(ctx context.Context, fs domain.FeatureSet) error {
	for _, l := range m {
		if err := l.Load(ctx, fs); err != nil {
			return err
		}
	}
	return nil
}
