package main

import "strings"

var (
	AboutMe = `I love building software that’s both useful and fun, and I’m always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it’s exploring a
	different language, experimenting with tools, or solving tricky problems.
	When I’m not coding, you’ll usually find me training Muay Thai, shooting pool with friends,
	or chasing down a new challenge outside the screen.`

	HeroTagline = `Software engineer building fast, dependable tools for the terminal and the web.`
)

// Project is one card in the project gallery. The long-form fields fill
// the detail dialog opened from the card.
type Project struct {
	Slug            string
	Title           string
	Description     string
	LongDescription string
	Challenges      []string
	Category        string
	Tags            []string
	Image           string
	GithubURL       string
	LiveURL         string
}

// Job is one entry in the experience timeline.
type Job struct {
	Title        string
	Company      string
	StartDate    string
	EndDate      string
	LogoPath     string
	BulletPoints []string
}

// SkillGroup is one column of the skills grid.
type SkillGroup struct {
	Name   string
	Skills []string
}

// Stat is one figure in the quick stats strip.
type Stat struct {
	Value string
	Label string
}

// Project categories used by the gallery filter.
const (
	CategoryAll  = "all"
	CategoryCLI  = "cli"
	CategoryWeb  = "web"
	CategoryData = "data"
)

var ProjectCategories = []string{CategoryAll, CategoryCLI, CategoryWeb, CategoryData}

var Projects = []Project{
	{
		Slug:  "terminal-mail",
		Title: "Terminal Mail",
		Description: `A terminal-based email client built in Go with fuzzyfinder capabilities
	using the Charmbracelet TUI framework and go-imap.`,
		Category: CategoryCLI,
		LongDescription: `Terminal Mail keeps a whole inbox a few keystrokes away. Folders and
	messages are fetched over IMAP in the background, cached locally, and searched with a fuzzy finder
	so a message can be found by any fragment of its sender, subject or body.`,
		Challenges: []string{
			"Keeping the interface responsive while large folders sync over slow connections",
			"Rendering HTML-only messages as readable plain text in the terminal",
			"Mapping IMAP flags onto a simple read, starred and archived model",
		},
		Tags:      []string{"Go", "Bubble Tea", "IMAP"},
		Image:     "images/project1.jpg",
		GithubURL: "https://github.com/Zachkp/terminal-mail",
	},
	{
		Slug:  "ytm-player",
		Title: "YTM Player",
		Description: `A terminal-based music streaming application built in Go with an elegant TUI
	interface, leveraging yt-dlp and mpv for seamless YouTube Music playback directly from the command line.`,
		Category: CategoryCLI,
		LongDescription: `YTM Player searches YouTube Music, builds a queue and plays it through an
	mpv process it controls over IPC. Track metadata resolves through yt-dlp, and playback survives the
	interface being resized or redrawn.`,
		Challenges: []string{
			"Driving mpv over its JSON IPC socket without blocking the interface",
			"Recovering when yt-dlp stream URLs expire mid-queue",
		},
		Tags:      []string{"Go", "TUI", "mpv"},
		Image:     "images/project2.jpg",
		GithubURL: "https://github.com/Zachkp/ytm-player",
	},
	{
		Slug:  "game-recommender",
		Title: "Game Recommender",
		Description: `A machine learning-powered web application that uses TF-IDF vectorization and cosine
	similarity to recommend games based on content analysis, featuring interactive data visualizations and
	real-time filtering by user reviews and ratings.`,
		Category: CategoryData,
		LongDescription: `The recommender vectorizes game descriptions and tags with TF-IDF and ranks
	titles by cosine similarity to the ones a player already likes. Dashboards show how genres cluster
	and let results be narrowed by review score and rating count.`,
		Challenges: []string{
			"Cleaning inconsistent tags and descriptions scraped from several storefronts",
			"Keeping similarity queries fast enough for interactive filtering",
			"Explaining why a game was recommended in the interface",
		},
		Tags:      []string{"Python", "scikit-learn", "Plotly"},
		Image:     "images/project3.jpg",
		GithubURL: "https://github.com/Zachkp/game-recommender",
	},
	{
		Slug:  "portfolio",
		Title: "This Portfolio",
		Description: `A modern, responsive portfolio website built with Go, Gin framework, and HTMX for
	dynamic interactions, styled with Tailwind CSS and enhanced with Alpine.js for seamless client-side
	interactivity without traditional JavaScript frameworks.`,
		Category: CategoryWeb,
		LongDescription: `The site is a single Go binary: Gin renders the page and its HTMX fragments,
	Alpine.js handles dialogs and small interactions, and an in-memory SQLite store keeps privacy-friendly
	visitor counts. The same content can be browsed from a terminal with the tui command.`,
		Challenges: []string{
			"Previewing the resume PDF inline where browsers allow it and falling back cleanly where they do not",
			"Keeping keyboard focus inside dialogs and restoring it when they close",
			"Counting visits without storing raw IP addresses",
		},
		Tags:      []string{"Go", "Gin", "HTMX", "Alpine.js"},
		Image:     "images/project4.jpg",
		GithubURL: "https://github.com/Zachkp/zach-dev",
		LiveURL:   "https://zach.dev",
	},
}

var WorkHistory = []Job{
	{
		Title:     "Presentation Expert",
		Company:   "Target",
		StartDate: "Aug 2023",
		EndDate:   "Present",
		LogoPath:  "images/TargetLogo.jpg",
		BulletPoints: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Title:     "Manager",
		Company:   "Jasons Catered Events",
		StartDate: "Aug 2016",
		EndDate:   "Present",
		LogoPath:  "images/jasonsCateringLogo.png",
		BulletPoints: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems, reducing technical delays and improving communication",
			"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation and minimizing downtime.",
		},
	},
}

var Education = []Job{
	{
		Title:     "Bachelor of Computer Science",
		Company:   "Western Governors University",
		StartDate: "Sept 2019",
		EndDate:   "May 2023",
		LogoPath:  "images/WGU-logo.png",
		BulletPoints: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
	{
		Title:     "Project Management",
		Company:   "Comptia",
		StartDate: "July 2022",
		EndDate:   "Present",
		LogoPath:  "images/comptiaCert.png",
		BulletPoints: []string{
			"Certified in agile project management methodology",
			"Verification code: SRRRPGBSWBRQCCDJ",
		},
	},
}

var Skills = []SkillGroup{
	{Name: "Languages", Skills: []string{"Go", "Python", "SQL", "JavaScript", "Bash"}},
	{Name: "Web", Skills: []string{"Gin", "HTMX", "Alpine.js", "Tailwind CSS"}},
	{Name: "Tooling", Skills: []string{"Git", "Docker", "Linux", "SQLite", "Neovim"}},
}

var QuickStats = []Stat{
	{Value: "4+", Label: "Shipped projects"},
	{Value: "8", Label: "Years leading teams"},
	{Value: "3.8", Label: "GPA"},
}

var NavLinks = []struct {
	Name string
	Href string
}{
	{"Projects", "#projects"},
	{"Experience", "#experience"},
	{"Skills", "#skills"},
	{"About", "#about"},
	{"Contact", "#contact"},
}

// ProjectBySlug looks up a project for its detail dialog.
func ProjectBySlug(slug string) (Project, bool) {
	for _, p := range Projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}

// FilterProjects returns the projects in category; unknown or "all"
// categories return everything.
func FilterProjects(category string) []Project {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return Projects
	}
	var out []Project
	for _, p := range Projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	if out == nil {
		return Projects
	}
	return out
}
