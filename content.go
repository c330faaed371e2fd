package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Content is the static copy rendered by the page views. Defaults live
// here; a TOML file named by CONTENT_PATH replaces any section it sets.
type Content struct {
	Headline   string     `toml:"headline"`
	Tagline    string     `toml:"tagline"`
	About      string     `toml:"about"`
	Projects   []Project  `toml:"projects"`
	Skills     []SkillSet `toml:"skills"`
	Experience []Entry    `toml:"experience"`
	Education  []Entry    `toml:"education"`
}

type Project struct {
	Title string   `toml:"title"`
	Blurb string   `toml:"blurb"`
	Image string   `toml:"image"`
	Tags  []string `toml:"tags"`
}

type SkillSet struct {
	Area   string   `toml:"area"`
	Skills []string `toml:"skills"`
}

// Entry is a job or a qualification on the about page.
type Entry struct {
	Title        string   `toml:"title"`
	Organization string   `toml:"organization"`
	Start        string   `toml:"start"`
	End          string   `toml:"end"`
	Logo         string   `toml:"logo"`
	Points       []string `toml:"points"`
}

func defaultContent() Content {
	return Content{
		Headline: "Creative Developer",
		Tagline:  "I build software that is useful, fast and a little bit fun.",
		About: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`,
		Projects: []Project{
			{
				Title: "Healthcare Platform",
				Blurb: "Appointment booking and patient records for a network of clinics, with role based access and audit trails.",
				Image: "/static/projects/healthcare-platform.jpg",
				Tags:  []string{"Go", "PostgreSQL", "HTMX"},
			},
			{
				Title: "COVID Detection",
				Blurb: "A chest X-ray classifier served behind a small web front end, with confidence scores and saliency overlays.",
				Image: "/static/projects/covid-detection.jpg",
				Tags:  []string{"Python", "PyTorch", "Docker"},
			},
			{
				Title: "Insurance Suite",
				Blurb: "Quote, policy and claims tooling for brokers, replacing a set of spreadsheets with a single workflow.",
				Image: "/static/projects/insurance-suite.jpg",
				Tags:  []string{"TypeScript", "Go", "SQLite"},
			},
		},
		Skills: []SkillSet{
			{Area: "Backend", Skills: []string{"Go", "Gin", "SQL", "REST", "gRPC"}},
			{Area: "Frontend", Skills: []string{"HTML", "CSS", "HTMX", "Alpine.js", "TypeScript"}},
			{Area: "Tooling", Skills: []string{"Docker", "GitHub Actions", "Linux", "Make"}},
		},
		Experience: []Entry{
			{
				Title:        "Software Developer",
				Organization: "Freelance",
				Start:        "Jan 2022",
				End:          "Present",
				Logo:         "/images/freelance.png",
				Points: []string{
					"Delivered web applications for small businesses from first sketch to production",
					"Cut page load times by rendering on the server and shipping less JavaScript",
				},
			},
		},
		Education: []Entry{
			{
				Title:        "Bachelor of Computer Science",
				Organization: "Western Governors University",
				Start:        "Sept 2019",
				End:          "May 2023",
				Logo:         "/images/WGU-logo.png",
				Points: []string{
					"Relevant coursework: Data Structures, Algorithms, Web Development",
				},
			},
		},
	}
}

// loadContent returns the default content overlaid with the file at path.
// An empty path means defaults only.
func loadContent(path string) (Content, error) {
	c := defaultContent()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read content: %w", err)
	}
	var override Content
	if err := toml.Unmarshal(b, &override); err != nil {
		return c, fmt.Errorf("parse content %s: %w", path, err)
	}
	c.merge(override)
	return c, nil
}

func (c *Content) merge(o Content) {
	if o.Headline != "" {
		c.Headline = o.Headline
	}
	if o.Tagline != "" {
		c.Tagline = o.Tagline
	}
	if o.About != "" {
		c.About = o.About
	}
	if len(o.Projects) > 0 {
		c.Projects = o.Projects
	}
	if len(o.Skills) > 0 {
		c.Skills = o.Skills
	}
	if len(o.Experience) > 0 {
		c.Experience = o.Experience
	}
	if len(o.Education) > 0 {
		c.Education = o.Education
	}
}
