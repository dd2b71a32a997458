package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/container"
)

const commandTimeout = 2 * time.Minute

// ========================================
// MIGRATE
// ========================================

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			dbConfig, err := config.LoadDatabaseConfig()
			if err != nil {
				return fmt.Errorf("load database config: %w", err)
			}

			db := database.NewPostgresDB(dbConfig)
			if err := db.Connect(ctx); err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			applied, err := db.Migrate(ctx)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
			}
			return nil
		},
	})
	return cmd
}

// ========================================
// SEED
// ========================================

func seedCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample bloggers, blogs and comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				stats, err := seed(ctx, c, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d authors, %d blogs, %d comments\n",
					stats.authors, stats.blogs, stats.comments)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "change-me-123", "Password for every seeded account")
	return cmd
}

// ========================================
// AUTHOR
// ========================================

func authorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Manage blog authors",
	}

	var username, password, bio string
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a user as a blog author (creates the user when missing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				authorID, err := createAuthor(ctx, c, username, password, bio)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "author %d created: %s\n", authorID, model.BloggerURL(authorID))
				return nil
			})
		},
	}
	create.Flags().StringVar(&username, "username", "", "Account username")
	create.Flags().StringVar(&password, "password", "", "Password (required when the user does not exist yet)")
	create.Flags().StringVar(&bio, "bio", "", "Author bio")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("bio")

	cmd.AddCommand(create)
	return cmd
}

// createAuthor gắn author profile cho user có sẵn, hoặc đăng ký user mới kèm profile
func createAuthor(ctx context.Context, c *container.Container, username, password, bio string) (int64, error) {
	existing, err := c.UserRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		author, err := c.AdminService.CreateAuthor(ctx, model.AuthorInput{UserID: existing.ID, Bio: bio})
		if err != nil {
			return 0, err
		}
		return author.ID, nil

	case errors.Is(err, user.ErrUserNotFound):
		if password == "" {
			return 0, fmt.Errorf("user %q does not exist, --password is required to create it", username)
		}
		dto, err := c.UserService.Register(ctx, user.RegisterRequest{Username: username, Password: password, Bio: bio})
		if err != nil {
			return 0, err
		}
		return *dto.AuthorID, nil

	default:
		return 0, err
	}
}

// ========================================
// USER
// ========================================

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var username string
	var revoke bool
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Grant (or with --revoke remove) access to the admin console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				dto, err := c.UserService.SetStaff(ctx, user.PromoteRequest{Username: username, IsStaff: !revoke})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is_staff=%t\n", dto.Username, dto.IsStaff)
				return nil
			})
		},
	}
	promote.Flags().StringVar(&username, "username", "", "Account username")
	promote.Flags().BoolVar(&revoke, "revoke", false, "Remove staff access instead of granting it")
	_ = promote.MarkFlagRequired("username")

	cmd.AddCommand(promote)
	return cmd
}

// withContainer dựng DI container, chạy fn rồi cleanup
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *container.Container) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	c, err := container.NewContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	if err := fn(ctx, c); err != nil {
		log.Error().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
		return err
	}
	return nil
}
