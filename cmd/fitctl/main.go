// Package main is fitctl, an administrative CLI for fitlog. It talks to the
// database directly through the same service layer as the API server, so the
// validation and password rules are identical.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
	"github.com/fitlog/fitlog/internal/service"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "fitctl",
		Short:   "Administer a fitlog deployment",
		Version: version,
	}

	root.AddCommand(
		migrateCmd(),
		registerCmd(),
		recordCmd(),
		listCmd(),
		seriesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openRepo connects to the database named by DATABASE_URL.
func openRepo(ctx context.Context) (*repository.Repository, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	return repository.New(ctx, databaseURL)
}

// noopSessions satisfies the session store without persisting anything. The
// CLI authenticates per invocation and never resumes a session.
type noopSessions struct{}

func (noopSessions) SaveSession(context.Context, string, *model.Principal, time.Duration) error {
	return nil
}

func (noopSessions) GetSession(context.Context, string) (*model.Principal, error) {
	return nil, service.ErrSessionNotFound
}

func (noopSessions) DeleteSession(context.Context, string) error { return nil }
func (noopSessions) DeleteUserSessions(context.Context, int64) error { return nil }

func credentialService(repo *repository.Repository) *service.CredentialService {
	return service.NewCredentialService(repo, noopSessions{}, nil, nil, time.Minute, time.Minute, nil)
}

// resolveUser looks an account up by email.
func resolveUser(ctx context.Context, repo *repository.Repository, email string) (*model.User, error) {
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no account with email %q", email)
	}
	return user, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.Migrate(ctx); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			session, err := credentialService(repo).Register(ctx, service.RegisterInput{
				Email:    email,
				Password: password,
				Confirm:  password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("created account %d (%s)\n", session.Principal.UserID, session.Principal.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func recordCmd() *cobra.Command {
	var email string
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a measurement for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := resolveUser(ctx, repo, email)
			if err != nil {
				return err
			}

			submitted := make(map[string]string)
			for name, value := range fields {
				if cmd.Flags().Changed(name) {
					submitted[name] = *value
				}
			}

			svc := service.NewMeasurementService(repo, nil, nil)
			m, err := svc.Record(ctx, user.ID, submitted)
			if err != nil {
				return err
			}

			fmt.Printf("recorded measurement %d at %s\n", m.ID, m.RecordedAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	for _, attr := range model.Attributes {
		name := string(attr)
		value := new(string)
		fields[name] = value
		cmd.Flags().StringVar(value, name, "", name+" value")
	}

	return cmd
}

func listCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an account's measurement history, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := resolveUser(ctx, repo, email)
			if err != nil {
				return err
			}

			svc := service.NewMeasurementService(repo, nil, nil)
			measurements, err := svc.ListForUser(ctx, user.ID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRECORDED\tWEIGHT\tSHOULDER\tCHEST\tARM\tWAIST\tLEG")
			for _, m := range measurements {
				fmt.Fprintf(w, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
					m.ID, m.RecordedAt.Format("2006-01-02 15:04"),
					m.Weight, m.Shoulder, m.Chest, m.Arm, m.Waist, m.Leg,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func seriesCmd() *cobra.Command {
	var email, data string

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print one attribute's history as timestamped values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := resolveUser(ctx, repo, email)
			if err != nil {
				return err
			}

			svc := service.NewMeasurementService(repo, nil, nil)
			attr, points, err := svc.SeriesFor(ctx, user.ID, data)
			if err != nil {
				return err
			}

			meta := attr.Meta()
			fmt.Printf("%s (%s)\n", meta.Title, attr)
			for _, p := range points {
				fmt.Printf("%s\t%.1f\n", p.RecordedAt.Format(time.RFC3339), p.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&data, "data", "weight", "Attribute to project")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
