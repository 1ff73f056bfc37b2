package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/catalog/catalogtest"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestSaveAndLoadCatalog(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)

	want := catalogtest.Sample()
	want.Projects[3].Specs = []catalog.Spec{{Name: "Controller", Value: "PID"}}
	want.Projects[3].Timeline = []catalog.Milestone{{Date: "2020", Title: "Model", Description: "Plant model"}}
	require.NoError(t, db.SaveCatalog(ctx, want))

	got, err := db.LoadCatalog(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = catalog.New(got)
	require.NoError(t, err)
}

func TestSaveCatalog_Replaces(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	require.NoError(t, db.SaveCatalog(ctx, catalogtest.Sample()))

	smaller := catalogtest.Sample()
	smaller.Projects = smaller.Projects[3:]
	require.NoError(t, db.SaveCatalog(ctx, smaller))

	got, err := db.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"quadcopter-controller", "face-mask-detection"}, catalogtest.IDs(got.Projects))
}

func TestSaveCatalog_InvalidLeavesDatabaseUnchanged(t *testing.T) {
	ctx := context.Background()
	db, _ := openTestDB(t)
	require.NoError(t, db.SaveCatalog(ctx, catalogtest.Sample()))

	bad := catalogtest.Sample()
	bad.Projects[0].Category = "astronomy"
	err := db.SaveCatalog(ctx, bad)
	require.True(t, errors.Is(err, catalog.ErrMalformedRecord), "got %v", err)

	got, err := db.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got.Projects, 5)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, path := openTestDB(t)
	require.NoError(t, db.SaveCatalog(ctx, catalogtest.Sample()))
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got.Projects, 5)
}

func TestLoadCatalog_Empty(t *testing.T) {
	db, _ := openTestDB(t)
	got, err := db.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Empty(t, got.Projects)
	require.Empty(t, got.Categories)
}

func TestUpSection(t *testing.T) {
	require.Equal(t, "\nCREATE TABLE a (x);\n", upSection("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;"))
	require.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
