package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/watch"
	"github.com/Zachkp/portfolio/internal/web"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	cfg    config.Config
	logger *zap.Logger

	buildOut string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Project portfolio: local preview server, static build and catalog tools",
	Long: `portfolio renders a catalog of projects as a browsable site.

Run without arguments to start the preview server. The catalog is read from
CATALOG_DB, CATALOG_PATH or the built-in catalog, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.Log.Level, cfg.Log.Development); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preview server with live search",
	Long: `Serves the listing, detail pages and JSON API on HOST:PORT. When the
catalog comes from CATALOG_PATH and WATCH_CATALOG is set, edits to the file
are picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the site as static files",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (default OUTPUT_DIR)")
	rootCmd.AddCommand(serveCmd, buildCmd, queryCmd, showCmd, statsCmd, exportCmd)
}

func siteInfo() render.Site {
	return render.Site{Title: cfg.Site.Title, About: AboutMe}
}

func runServe(cmd *cobra.Command, _ []string) error {
	gin.SetMode(cfg.GinMode)

	store, src, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	srv, err := web.New(store, siteInfo(), web.Options{
		MediaDir:     cfg.Site.MediaDir,
		AdminEnabled: cfg.Admin.Enabled,
	}, logger)
	if err != nil {
		return err
	}
	if cfg.Admin.Enabled {
		logger.Info("admin endpoints enabled for localhost", zap.String("prefix", "/admin"))
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	if cfg.Catalog.Watch && src.kind == sourceFile {
		w, err := watch.New(src.location, store, cfg.Catalog.WatchDebounce, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			w.Stop()
			return nil
		})
	}
	g.Go(func() error {
		return srv.Run(ctx, cfg.Addr())
	})
	return g.Wait()
}

func runBuild(cmd *cobra.Command, _ []string) error {
	store, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	out := buildOut
	if out == "" {
		out = cfg.Site.OutputDir
	}
	res, err := site.NewBuilder(store, siteInfo(), cfg.Site.MediaDir, logger).Build(cmd.Context(), out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", res.Pages, out)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
