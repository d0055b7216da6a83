package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/platform"
	"github.com/Zachkp/portfolio/internal/resume"
	"github.com/Zachkp/portfolio/internal/tui"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		Long: `Shows the portfolio in the terminal. The resume dialog fetches the
document from the configured origin and can save it to the download
directory.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().String("origin", "", "Site to fetch the resume from (default: configured origin)")
	cmd.Flags().String("download-dir", "", "Directory downloads are saved to (default: XDG download dir)")
	cmd.Flags().String("log-file", "", "Write logs to this file instead of discarding them")

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	logOut := io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	cfg, logger, err := loadConfig(cmd, logOut)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	origin, _ := cmd.Flags().GetString("origin")
	if origin == "" {
		origin = cfg.ProbeOrigin()
	}
	origin = strings.TrimRight(origin, "/")
	downloadDir, _ := cmd.Flags().GetString("download-dir")

	client := &http.Client{Timeout: cfg.Resume.ProbeTimeout}
	cell := resume.NewCell(resume.NewProber(client, logger), origin+resume.DocumentPath)

	app := tui.New(tui.Options{
		Sections:    portfolioSections(),
		Projects:    portfolioProjects(),
		Origin:      origin,
		Env:         platform.FromTerminal(os.Getenv),
		Verdicts:    cell,
		Client:      client,
		Logger:      logger,
		DownloadDir: downloadDir,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cell.OnResolve(app.VerdictResolved)
	cell.Mount(ctx)
	defer cell.Teardown()

	return app.Run()
}

// portfolioSections lays the page copy out as terminal sections.
func portfolioSections() []tui.Section {
	var projects strings.Builder
	for _, p := range Projects {
		fmt.Fprintf(&projects, "%s [%s]\n%s\n%s\n\n", p.Title, p.Category,
			collapseSpace(p.Description), strings.Join(p.Tags, " · "))
	}

	var stats strings.Builder
	for _, s := range QuickStats {
		fmt.Fprintf(&stats, "%-6s %s\n", s.Value, s.Label)
	}

	var skills strings.Builder
	for _, g := range Skills {
		fmt.Fprintf(&skills, "%s: %s\n", g.Name, strings.Join(g.Skills, ", "))
	}

	return []tui.Section{
		{Title: "Hi, I'm Zach", Body: HeroTagline + "\n\n" + stats.String()},
		{Title: "Projects", Body: projects.String()},
		{Title: "Experience", Body: renderJobs(WorkHistory)},
		{Title: "Education", Body: renderJobs(Education)},
		{Title: "Skills", Body: skills.String()},
		{Title: "About Me", Body: collapseSpace(AboutMe)},
	}
}

// portfolioProjects feeds the project list and its detail dialog.
func portfolioProjects() []tui.Project {
	out := make([]tui.Project, 0, len(Projects))
	for _, p := range Projects {
		out = append(out, tui.Project{
			Title:      p.Title,
			Category:   p.Category,
			Summary:    collapseSpace(p.Description),
			Overview:   collapseSpace(p.LongDescription),
			Challenges: p.Challenges,
			Tags:       p.Tags,
			GithubURL:  p.GithubURL,
			LiveURL:    p.LiveURL,
		})
	}
	return out
}

func renderJobs(jobs []Job) string {
	var b strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&b, "%s, %s (%s - %s)\n", j.Title, j.Company, j.StartDate, j.EndDate)
		for _, point := range j.BulletPoints {
			fmt.Fprintf(&b, "  - %s\n", point)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// collapseSpace joins the indented continuation lines of the page copy.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
