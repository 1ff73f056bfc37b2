// Package catalogtest provides catalog fixtures for tests.
package catalogtest

import (
	"testing"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/stretchr/testify/require"
)

// Sample returns the five-project sample catalog: three robotics projects,
// one control-systems project and one machine-learning project, plus an unused
// web-development category.
func Sample() catalog.Data {
	return catalog.Data{
		Projects: []catalog.Project{
			{
				ID:               "michael-jansen",
				Title:            "Michael Jansen: The Dancing Robot",
				ShortDescription: "A humanoid dancing robot with advanced motion control",
				FullDescription:  "Designed and developed Michael Jansen, a dancing robot with servo motors and custom control algorithms.",
				Category:         "robotics",
				Tags:             []string{"Robotics", "Control Systems", "Motion Planning", "Columbia University"},
				Technologies:     []string{"Arduino", "Servo Motors", "Control Theory", "Mechanical Design"},
				Thumbnail:        "Media/glamourshot.jpg",
				Images:           []string{"Media/GlamourPhoto2.jpg", "Media/glamourshot.jpg", "Media/sideview.jpg"},
				DetailPage:       "Michael_jansen.html",
				Date:             "2022",
				Status:           catalog.StatusCompleted,
				Featured:         true,
			},
			{
				ID:               "robot-mapping",
				Title:            "Robot Mapping using Indoor Positioning Systems",
				ShortDescription: "SLAM implementation for indoor robot navigation",
				FullDescription:  "Developed a mapping solution for indoor robots using positioning systems to build maps for autonomous navigation.",
				Category:         "robotics",
				Tags:             []string{"SLAM", "Navigation", "Mapping", "ROS", "Computer Vision"},
				Technologies:     []string{"ROS", "Python", "OpenCV", "LIDAR", "Computer Vision"},
				Thumbnail:        "Media/Mapping/turtle-bot.jpg",
				Images:           []string{"Media/Mapping/turtle-bot.jpg", "Media/Mapping/lab.png"},
				DetailPage:       "mapping.html",
				Date:             "2021",
				Status:           catalog.StatusCompleted,
				Featured:         true,
			},
			{
				ID:               "robocon-2017",
				Title:            "Robocon 2017: The All-India Robotics Competition",
				ShortDescription: "Competitive robotics project for national competition",
				FullDescription:  "Designed and built competitive robots for the all-India robotics competition.",
				Category:         "robotics",
				Tags:             []string{"Competition", "Mechanical Design", "Team Project", "BITS Pilani"},
				Technologies:     []string{"Mechanical Design", "Control Systems", "Team Collaboration"},
				Thumbnail:        "Media/Robocon/main-pic.jpg",
				Images:           []string{"Media/Robocon/main-pic.jpg", "Media/Robocon/robots.jpg"},
				DetailPage:       "robocon.html",
				Date:             "2017",
				Status:           catalog.StatusCompleted,
			},
			{
				ID:               "quadcopter-controller",
				Title:            "Quadcopter Controller Simulation",
				ShortDescription: "MATLAB/Simulink quadcopter control model",
				FullDescription:  "A quadcopter controller simulation focused on flight dynamics, control theory and stability analysis.",
				Category:         "control-systems",
				Tags:             []string{"MATLAB", "Simulink", "Control Theory", "Flight Dynamics", "Simulation"},
				Technologies:     []string{"MATLAB", "Simulink", "Control Theory", "PID Controllers"},
				Thumbnail:        "Media/Quadcopter/quad.JPG",
				Images:           []string{"Media/Quadcopter/quad.JPG"},
				DetailPage:       "quadcopter.html",
				Date:             "2020",
				Status:           catalog.StatusCompleted,
			},
			{
				ID:               "face-mask-detection",
				Title:            "Face Mask Detection using CNN",
				ShortDescription: "Deep learning model for face mask detection",
				FullDescription:  "A convolutional neural network for real-time face mask detection in public spaces.",
				Category:         "machine-learning",
				Tags:             []string{"Deep Learning", "CNN", "Computer Vision", "COVID-19", "Safety"},
				Technologies:     []string{"Python", "TensorFlow", "OpenCV", "CNN", "Computer Vision"},
				Thumbnail:        "Media/DIP/facemask.png",
				Images:           []string{"Media/DIP/facemask.png", "Media/DIP/results.png"},
				DetailPage:       "dip.html",
				Date:             "2021",
				Status:           catalog.StatusCompleted,
				Featured:         true,
			},
		},
		Categories: []catalog.Category{
			{ID: catalog.AllCategories, Name: "All Projects", Icon: "bx-grid-alt"},
			{ID: "robotics", Name: "Robotics", Icon: "bx-bot"},
			{ID: "machine-learning", Name: "Machine Learning", Icon: "bx-brain"},
			{ID: "control-systems", Name: "Control Systems", Icon: "bx-cog"},
			{ID: "web-development", Name: "Web Development", Icon: "bx-code-alt"},
		},
	}
}

// NewStore builds a fresh store over Sample.
func NewStore(t testing.TB) *catalog.Store {
	t.Helper()
	s, err := catalog.New(Sample())
	require.NoError(t, err)
	return s
}

// IDs returns the ids of projects in order.
func IDs(projects []catalog.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}
