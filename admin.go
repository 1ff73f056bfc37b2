package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportDB string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog counts: total, per category and completed",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the current catalog to a SQLite database",
	Long: `Writes the catalog into a SQLite snapshot database, replacing what the
database held before. Point CATALOG_DB at the file to serve from it.

Example:
  CATALOG_PATH=projects.yaml portfolio export --db catalog.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "catalog.db", "database file to write")
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	st := store.Stats()
	return printResult(cmd.OutOrStdout(), st, func(w io.Writer) error {
		fmt.Fprintf(w, "Projects:  %d\n", st.Total)
		fmt.Fprintf(w, "Completed: %d\n", st.Completed)
		for _, c := range store.Categories() {
			if c.ID == catalog.AllCategories {
				continue
			}
			fmt.Fprintf(w, "  %-24s %d\n", c.Name, st.ByCategory[c.ID])
		}
		return nil
	})
}

func runExport(cmd *cobra.Command, _ []string) error {
	if cfg.Catalog.DB != "" && sameFile(exportDB, cfg.Catalog.DB) {
		return fmt.Errorf("export target %s is the catalog source", exportDB)
	}
	store, src, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cmd.Context(), exportDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveCatalog(cmd.Context(), store.Data()); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	logger.Info("catalog exported",
		zap.String("from", string(src.kind)),
		zap.String("db", exportDB),
		zap.Int("projects", store.Len()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d projects to %s\n", store.Len(), exportDB)
	return nil
}

// sameFile reports whether a and b name the same file, resolving relative
// paths and, when both exist, links.
func sameFile(a, b string) bool {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ia, ib)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
