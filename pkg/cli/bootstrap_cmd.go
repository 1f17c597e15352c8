package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	internaldb "github.com/pnoren1/Course-App-sub003/internal/db"
	"github.com/pnoren1/Course-App-sub003/internal/db/repository"
	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

func newBootstrapCmd() *cobra.Command {
	var (
		dbPath string
		userID string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Provision an admin profile directly in the profile store",
		Long: "Create or promote an admin profile by writing to the profile store " +
			"through the privileged handle. Use this to break the chicken-and-egg " +
			"problem on a fresh deployment where no admin exists yet.",
		Example: `  # Promote a user to admin in the default store
  courseadm bootstrap --user-id user-123 --email admin@example.com

  # Against an explicit database file
  courseadm bootstrap --db /var/lib/courseadm/profiles.sqlite --user-id user-123`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = os.Getenv("PROFILE_DB_PATH")
			}
			if dbPath == "" {
				dbPath = "course_admin.sqlite"
			}

			priv, scoped, err := internaldb.OpenHandles(dbPath, 1)
			if err != nil {
				return fmt.Errorf("open profile store: %w", err)
			}
			defer func() { _ = internaldb.Close(priv, scoped) }()

			if err := internaldb.RunMigrations(priv.DB); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			req := domain.UpsertAdminProfileRequest{UserID: userID}
			if email != "" {
				req.Email = &email
			}

			p, err := repository.NewProfileRepo(priv).UpsertAdmin(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("provision admin: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "admin profile ready: user_id=%s role=%s\n", p.UserID, p.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the profile store (defaults to $PROFILE_DB_PATH)")
	cmd.Flags().StringVar(&userID, "user-id", "", "Identity provider subject to promote")
	cmd.Flags().StringVar(&email, "email", "", "Email to record on the profile")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
