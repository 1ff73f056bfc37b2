package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
projects:
  - id: robot-mapping
    title: Robot Mapping
    shortDescription: SLAM for indoor navigation
    fullDescription: Mapping with positioning systems.
    category: robotics
    tags: [SLAM, Navigation]
    technologies: [ROS, Python]
    thumbnail: Media/Mapping/turtle-bot.jpg
    images: [Media/Mapping/turtle-bot.jpg]
    detailPage: mapping.html
    date: "2021"
    status: completed
    githubLink: ""
    liveDemo: ""
    featured: true
    specs:
      - name: Sensor
        value: LIDAR
    timeline:
      - date: Jan 2021
        title: Kickoff
        description: Lab setup
categories:
  - id: all
    name: All Projects
    icon: bx-grid-alt
  - id: robotics
    name: Robotics
    icon: bx-bot
`

func TestDecode(t *testing.T) {
	data, err := catalog.Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, data.Projects, 1)
	require.Len(t, data.Categories, 2)

	p := data.Projects[0]
	require.Equal(t, "robot-mapping", p.ID)
	require.Equal(t, "2021", p.Date)
	require.Equal(t, catalog.StatusCompleted, p.Status)
	require.True(t, p.Featured)
	require.Equal(t, []string{"SLAM", "Navigation"}, p.Tags)
	require.Equal(t, []catalog.Spec{{Name: "Sensor", Value: "LIDAR"}}, p.Specs)
	require.Equal(t, "Kickoff", p.Timeline[0].Title)

	_, err = catalog.New(data)
	require.NoError(t, err)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := catalog.Decode(strings.NewReader("projects:\n  - id: x\n    titel: typo\n"))
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	data, err := catalog.Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, data.Projects)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	data, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, data.Projects, 1)

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
