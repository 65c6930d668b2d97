package comparison

import (
	"context"
	"fmt"

	"city-comparison/core/join"
	"city-comparison/core/loader"
	"city-comparison/core/table"
	"city-comparison/feature/census"
	"city-comparison/feature/fbi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Registered source names.
const (
	SourceCensus2017 = "census_2017"
	SourceCensus2010 = "census_2010"
	SourceFBI        = "fbi"
)

// Field suffixes each source carries into the joins.
const (
	Census2017Suffix = ""
	Census2010Suffix = " census_2010"
	FBISuffix        = "_fbi_crime"
)

// RegisterSources registers the census and FBI datasets with m, all read
// through open.
func RegisterSources(m *loader.Manager, open loader.OpenFunc) error {
	sources := []struct {
		name string
		src  loader.Source
	}{
		{SourceCensus2017, loader.Source{Kind: census.Kind, Loader: census.NewLoader(open)}},
		{SourceCensus2010, loader.Source{Kind: census.Kind2010, Loader: census.NewLoader(open)}},
		{SourceFBI, loader.Source{Kind: fbi.Kind, Loader: fbi.NewLoader(open)}},
	}
	for _, s := range sources {
		if err := m.Register(s.name, s.src); err != nil {
			return err
		}
	}
	return nil
}

// Service builds the city comparison table.
type Service struct {
	manager *loader.Manager
	engine  *join.Engine
	sources loader.Config
	logger  *zap.Logger
}

// NewService creates a comparison service. The manager must have the sources
// of RegisterSources.
func NewService(manager *loader.Manager, engine *join.Engine, sources loader.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		manager: manager,
		engine:  engine,
		sources: sources,
		logger:  logger,
	}
}

// Build loads the three datasets, joins the census tables on the geography
// id, joins the result with the FBI table on (state, city, population) and
// applies the final cleanup.
func (s *Service) Build(ctx context.Context) (*table.Table, error) {
	var estimates, geography, crime *table.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		estimates, err = s.open(gctx, SourceCensus2017, s.sources.Census2017Path, Census2017Suffix, Census2017)
		return err
	})
	g.Go(func() (err error) {
		geography, err = s.open(gctx, SourceCensus2010, s.sources.Census2010Path, Census2010Suffix, Census2010)
		return err
	})
	g.Go(func() (err error) {
		crime, err = s.open(gctx, SourceFBI, s.sources.FBIPath, FBISuffix, Profile{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cities, err := s.engine.Join(estimates, geography)
	if err != nil {
		return nil, fmt.Errorf("failed to join census tables: %w", err)
	}
	s.logger.Info("Census tables joined", zap.Int("rows", cities.Len()))

	combined, err := s.engine.Join(cities, crime)
	if err != nil {
		return nil, fmt.Errorf("failed to join crime table: %w", err)
	}
	s.logger.Info("Crime table joined", zap.Int("rows", combined.Len()))

	out, err := Apply(combined, FinalCSV)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Comparison table built",
		zap.Int("rows", out.Len()),
		zap.Int("fields", len(out.Schema())),
	)
	return out, nil
}

func (s *Service) open(ctx context.Context, name, handle, suffix string, p Profile) (*table.Table, error) {
	t, err := s.manager.Open(ctx, name, handle, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return Apply(t, p)
}
