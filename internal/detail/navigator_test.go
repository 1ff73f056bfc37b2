package detail_test

import (
	"testing"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/catalog/catalogtest"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/stretchr/testify/require"
)

func TestNavigator_Adjacent(t *testing.T) {
	nav := detail.NewNavigator(catalogtest.NewStore(t))

	first, err := nav.Adjacent("michael-jansen")
	require.NoError(t, err)
	require.Nil(t, first.Previous)
	require.Equal(t, "robot-mapping", first.Next.ID)

	middle, err := nav.Adjacent("robocon-2017")
	require.NoError(t, err)
	require.Equal(t, "robot-mapping", middle.Previous.ID)
	require.Equal(t, "quadcopter-controller", middle.Next.ID)

	last, err := nav.Adjacent("face-mask-detection")
	require.NoError(t, err)
	require.Equal(t, "quadcopter-controller", last.Previous.ID)
	require.Nil(t, last.Next)

	_, err = nav.Adjacent("missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestNavigator_AdjacentSingleProject(t *testing.T) {
	data := catalogtest.Sample()
	data.Projects = data.Projects[:1]
	store, err := catalog.New(data)
	require.NoError(t, err)

	adj, err := detail.NewNavigator(store).Adjacent("michael-jansen")
	require.NoError(t, err)
	require.Nil(t, adj.Previous)
	require.Nil(t, adj.Next)
}

func TestNavigator_Related(t *testing.T) {
	nav := detail.NewNavigator(catalogtest.NewStore(t))

	tests := []struct {
		id    string
		limit int
		want  []string
	}{
		{id: "robot-mapping", limit: 3, want: []string{"michael-jansen", "robocon-2017", "quadcopter-controller"}},
		{id: "robot-mapping", limit: 0, want: []string{"michael-jansen", "robocon-2017", "quadcopter-controller"}},
		{id: "face-mask-detection", limit: 3, want: []string{"michael-jansen", "robot-mapping", "robocon-2017"}},
		{id: "michael-jansen", limit: 1, want: []string{"robot-mapping"}},
		{id: "quadcopter-controller", limit: 10, want: []string{"michael-jansen", "robot-mapping", "robocon-2017", "face-mask-detection"}},
	}
	for _, tt := range tests {
		got, err := nav.Related(tt.id, tt.limit)
		require.NoError(t, err)
		require.Equal(t, tt.want, catalogtest.IDs(got), "Related(%q, %d)", tt.id, tt.limit)
	}
}

func TestNavigator_RelatedSizeAndSelfExclusion(t *testing.T) {
	store := catalogtest.NewStore(t)
	nav := detail.NewNavigator(store)

	for _, p := range store.Projects() {
		got, err := nav.Related(p.ID, detail.DefaultRelatedLimit)
		require.NoError(t, err)
		require.Len(t, got, min(detail.DefaultRelatedLimit, store.Len()-1))
		require.NotContains(t, catalogtest.IDs(got), p.ID)
	}
}

func TestNavigator_RelatedDistinguishesMissingFromEmpty(t *testing.T) {
	data := catalogtest.Sample()
	data.Projects = data.Projects[:1]
	store, err := catalog.New(data)
	require.NoError(t, err)
	nav := detail.NewNavigator(store)

	got, err := nav.Related("michael-jansen", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)

	_, err = nav.Related("missing", 3)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestNavigator_Page(t *testing.T) {
	nav := detail.NewNavigator(catalogtest.NewStore(t))

	page, err := nav.Page("robot-mapping")
	require.NoError(t, err)
	require.Equal(t, "robot-mapping", page.Project.ID)
	require.Equal(t, "Robotics", page.Category.Name)
	require.Equal(t, "michael-jansen", page.Adjacent.Previous.ID)
	require.Equal(t, "robocon-2017", page.Adjacent.Next.ID)
	require.Len(t, page.Related, detail.DefaultRelatedLimit)

	_, err = nav.Page("missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}
