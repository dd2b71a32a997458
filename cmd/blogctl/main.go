// Command blogctl là công cụ vận hành: migrate schema, seed dữ liệu mẫu,
// đăng ký author và cấp quyền admin.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"blog-backend/pkg/logger"
)

const appName = "blogctl"

func main() {
	_ = godotenv.Load()
	logger.Init(envOr("APP_ENV", "development"))

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Operator tool for the blog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		authorCmd(),
		userCmd(),
	)
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
