package main

import (
	"context"
	"fmt"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/sqlite"
	"go.uber.org/zap"
)

type sourceKind string

const (
	sourceDB       sourceKind = "sqlite"
	sourceFile     sourceKind = "file"
	sourceEmbedded sourceKind = "embedded"
)

type catalogSource struct {
	kind     sourceKind
	location string
}

// openCatalog builds the store from the configured source: CATALOG_DB, then
// CATALOG_PATH, then the catalog compiled into the binary.
func openCatalog(ctx context.Context) (*catalog.Store, catalogSource, error) {
	data, src, err := loadCatalogData(ctx)
	if err != nil {
		return nil, src, err
	}
	store, err := catalog.New(data)
	if err != nil {
		return nil, src, fmt.Errorf("load %s catalog %s: %w", src.kind, src.location, err)
	}
	logger.Info("catalog loaded",
		zap.String("source", string(src.kind)),
		zap.String("location", src.location),
		zap.Int("projects", store.Len()),
	)
	return store, src, nil
}

func loadCatalogData(ctx context.Context) (catalog.Data, catalogSource, error) {
	switch {
	case cfg.Catalog.DB != "":
		src := catalogSource{kind: sourceDB, location: cfg.Catalog.DB}
		db, err := sqlite.Open(ctx, cfg.Catalog.DB)
		if err != nil {
			return catalog.Data{}, src, err
		}
		defer db.Close()
		data, err := db.LoadCatalog(ctx)
		return data, src, err
	case cfg.Catalog.Path != "":
		src := catalogSource{kind: sourceFile, location: cfg.Catalog.Path}
		data, err := catalog.LoadFile(cfg.Catalog.Path)
		return data, src, err
	default:
		src := catalogSource{kind: sourceEmbedded, location: "catalog.yaml"}
		data, err := catalog.DecodeBytes(defaultCatalog)
		return data, src, err
	}
}
