package mock

import (
	"context"

	"github.com/fwojciec/pricescout"
)

var _ pricescout.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of pricescout.SourceService.
type SourceService struct {
	CreateSourceFn     func(ctx context.Context, source *pricescout.Source) error
	FindSourceByNameFn func(ctx context.Context, name string) (*pricescout.Source, error)
	FindSourcesFn      func(ctx context.Context) ([]*pricescout.Source, error)
	UpdateSourceFn     func(ctx context.Context, name string, upd pricescout.SourceUpdate) (*pricescout.Source, error)
	DeleteSourceFn     func(ctx context.Context, name string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *pricescout.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*pricescout.Source, error) {
	return s.FindSourceByNameFn(ctx, name)
}

func (s *SourceService) FindSources(ctx context.Context) ([]*pricescout.Source, error) {
	return s.FindSourcesFn(ctx)
}

func (s *SourceService) UpdateSource(ctx context.Context, name string, upd pricescout.SourceUpdate) (*pricescout.Source, error) {
	return s.UpdateSourceFn(ctx, name, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, name string) error {
	return s.DeleteSourceFn(ctx, name)
}
