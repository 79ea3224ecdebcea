package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"taskify/internal/config"
	"taskify/internal/models"
	"taskify/internal/service"
	"taskify/internal/storage/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users and projects into the database",
	RunE:  runSeed,
}

type demoTask struct {
	title       string
	description string
	status      string
}

type demoProject struct {
	title       string
	description string
	owner       string
	tasks       []demoTask
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	store, err := sqlite.Open(cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	svc := service.New(store, logger)

	users := []models.User{
		{ID: "demo-user-john-doe", Email: "john.doe@taskify.com", Name: "John Doe"},
		{ID: "demo-user-jane-doe", Email: "jane.doe@taskify.com", Name: "Jane Doe"},
	}
	for _, u := range users {
		created, err := store.UpsertUser(ctx, u)
		if err != nil {
			return err
		}
		logger.Info("demo user ready", slog.String("email", created.Email))
	}

	statuses, err := svc.ListStatuses(ctx)
	if err != nil {
		return err
	}
	statusByName := make(map[string]string, len(statuses))
	for _, st := range statuses {
		statusByName[st.Name] = st.ID
	}

	projects := []demoProject{
		{
			title:       "Website Redesign",
			description: "Complete overhaul of company website with modern design",
			owner:       "demo-user-john-doe",
			tasks: []demoTask{
				{"Design mockups", "Create initial design concepts and mockups", "Done"},
				{"Implement responsive layout", "Build responsive components for all screen sizes", "In Progress"},
				{"SEO optimization", "Optimize metadata and content for search engines", "Incomplete"},
			},
		},
		{
			title:       "Mobile App Development",
			description: "Build cross-platform mobile application",
			owner:       "demo-user-john-doe",
			tasks: []demoTask{
				{"Setup development environment", "Configure toolchain and required dependencies", "Done"},
				{"Build authentication flow", "Implement login, signup, and password reset", "In Progress"},
				{"Create user dashboard", "Design and implement main dashboard UI", "In Progress"},
				{"Integrate API endpoints", "Connect frontend to backend API", "Incomplete"},
			},
		},
		{
			title:       "Documentation Update",
			description: "Update all technical documentation for Q4",
			owner:       "demo-user-jane-doe",
			tasks: []demoTask{
				{"Review existing docs", "Audit current documentation for accuracy", "Done"},
				{"Write API documentation", "Document all REST API endpoints", "Incomplete"},
			},
		},
	}

	for _, p := range projects {
		desc := p.description
		project, err := svc.CreateProject(ctx, p.owner, p.title, &desc)
		if err != nil {
			return err
		}
		for _, t := range p.tasks {
			taskDesc := t.description
			statusID := statusByName[t.status]
			if _, err := svc.CreateTask(ctx, p.owner, project.ID, t.title, &taskDesc, &statusID); err != nil {
				return err
			}
		}
		logger.Info("demo project created", slog.String("title", project.Title), slog.Int("tasks", len(p.tasks)))
	}

	return nil
}
