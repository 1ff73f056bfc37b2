package catalog

// AllCategories is the sentinel category id meaning "no filter".
const AllCategories = "all"

// Status is the lifecycle state of a project.
type Status string

// StatusCompleted marks a finished project. Other values are allowed and only
// matter for aggregate counts.
const StatusCompleted Status = "completed"

// Project is a single portfolio entry. Records are immutable once stored; the
// slices are shared with the store snapshot and must not be modified.
type Project struct {
	ID               string      `yaml:"id" json:"id"`
	Title            string      `yaml:"title" json:"title"`
	ShortDescription string      `yaml:"shortDescription" json:"shortDescription"`
	FullDescription  string      `yaml:"fullDescription" json:"fullDescription"`
	Category         string      `yaml:"category" json:"category"`
	Tags             []string    `yaml:"tags" json:"tags"`
	Technologies     []string    `yaml:"technologies" json:"technologies"`
	Thumbnail        string      `yaml:"thumbnail" json:"thumbnail"`
	Images           []string    `yaml:"images" json:"images"`
	DetailPage       string      `yaml:"detailPage" json:"detailPage"`
	Date             string      `yaml:"date" json:"date"`
	Status           Status      `yaml:"status" json:"status"`
	GithubLink       string      `yaml:"githubLink" json:"githubLink,omitempty"`
	LiveDemo         string      `yaml:"liveDemo" json:"liveDemo,omitempty"`
	Featured         bool        `yaml:"featured" json:"featured"`
	Specs            []Spec      `yaml:"specs,omitempty" json:"specs,omitempty"`
	Timeline         []Milestone `yaml:"timeline,omitempty" json:"timeline,omitempty"`
}

// Spec is one row of a project's technical specification table.
type Spec struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Milestone is one entry of a project timeline.
type Milestone struct {
	Date        string `yaml:"date" json:"date"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Category groups projects for filtering.
type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

// Data is the static catalog definition a Store is built from.
type Data struct {
	Projects   []Project  `yaml:"projects" json:"projects"`
	Categories []Category `yaml:"categories" json:"categories"`
}

// Patch lists the fields to replace on a project. Nil fields are left as is.
type Patch struct {
	Title            *string      `json:"title,omitempty"`
	ShortDescription *string      `json:"shortDescription,omitempty"`
	FullDescription  *string      `json:"fullDescription,omitempty"`
	Category         *string      `json:"category,omitempty"`
	Tags             *[]string    `json:"tags,omitempty"`
	Technologies     *[]string    `json:"technologies,omitempty"`
	Thumbnail        *string      `json:"thumbnail,omitempty"`
	Images           *[]string    `json:"images,omitempty"`
	DetailPage       *string      `json:"detailPage,omitempty"`
	Date             *string      `json:"date,omitempty"`
	Status           *Status      `json:"status,omitempty"`
	GithubLink       *string      `json:"githubLink,omitempty"`
	LiveDemo         *string      `json:"liveDemo,omitempty"`
	Featured         *bool        `json:"featured,omitempty"`
	Specs            *[]Spec      `json:"specs,omitempty"`
	Timeline         *[]Milestone `json:"timeline,omitempty"`
}

// Apply returns a copy of p with the patch applied. p is not modified.
func (pt Patch) Apply(p Project) Project {
	out := p.clone()
	if pt.Title != nil {
		out.Title = *pt.Title
	}
	if pt.ShortDescription != nil {
		out.ShortDescription = *pt.ShortDescription
	}
	if pt.FullDescription != nil {
		out.FullDescription = *pt.FullDescription
	}
	if pt.Category != nil {
		out.Category = *pt.Category
	}
	if pt.Tags != nil {
		out.Tags = append([]string(nil), (*pt.Tags)...)
	}
	if pt.Technologies != nil {
		out.Technologies = append([]string(nil), (*pt.Technologies)...)
	}
	if pt.Thumbnail != nil {
		out.Thumbnail = *pt.Thumbnail
	}
	if pt.Images != nil {
		out.Images = append([]string(nil), (*pt.Images)...)
	}
	if pt.DetailPage != nil {
		out.DetailPage = *pt.DetailPage
	}
	if pt.Date != nil {
		out.Date = *pt.Date
	}
	if pt.Status != nil {
		out.Status = *pt.Status
	}
	if pt.GithubLink != nil {
		out.GithubLink = *pt.GithubLink
	}
	if pt.LiveDemo != nil {
		out.LiveDemo = *pt.LiveDemo
	}
	if pt.Featured != nil {
		out.Featured = *pt.Featured
	}
	if pt.Specs != nil {
		out.Specs = append([]Spec(nil), (*pt.Specs)...)
	}
	if pt.Timeline != nil {
		out.Timeline = append([]Milestone(nil), (*pt.Timeline)...)
	}
	return out
}

func (p Project) clone() Project {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.Technologies = append([]string(nil), p.Technologies...)
	out.Images = append([]string(nil), p.Images...)
	out.Specs = append([]Spec(nil), p.Specs...)
	out.Timeline = append([]Milestone(nil), p.Timeline...)
	return out
}

// Stats are aggregate counts over the catalog.
type Stats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	ByCategory map[string]int `json:"byCategory"`
}
