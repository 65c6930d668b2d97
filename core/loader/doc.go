// Package loader provides the source loading system.
//
// Each source dataset is registered under a name together with its table kind
// and a table.Loader (feature/census, feature/fbi). The Manager opens sources
// as tables and keeps their records in memory for a configurable TTL, using
// singleflight so that concurrent opens of the same file read it once.
//
// # Openers
//
// Loaders read bytes through an OpenFunc, so the same parser works on:
//   - FileOpener: local file paths
//   - StorageOpener: objects in a MinIO/S3 bucket
//
// # Usage
//
//	m := loader.NewManager(cfg.Sources.CacheTTL(), log)
//	_ = m.Register("census", loader.Source{Kind: census.Kind, Loader: census.NewLoader(open)})
//	t, err := m.Open(ctx, "census", cfg.Sources.Census2017Path, "")
package loader
