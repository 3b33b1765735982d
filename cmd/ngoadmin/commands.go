package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/ngohub/internal/app/bootstrap"
	"github.com/dalemusser/ngohub/internal/app/system/auth"
	"github.com/dalemusser/ngohub/internal/app/system/database"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"github.com/dalemusser/ngohub/internal/app/system/workers"
	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath  string
	verbose bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ngoadmin",
		Short: "NGOHub maintenance tool",
		Long: `ngoadmin manages the NGOHub SQLite database and admin credentials.

The database path defaults to NGOHUB_DB_PATH, then ngohub.db.`,
		SilenceUsage: true,
	}

	def := os.Getenv("NGOHUB_DB_PATH")
	if def == "" {
		def = "ngohub.db"
	}
	root.PersistentFlags().StringVar(&dbPath, "db", def, "SQLite database file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newStatusCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newHashPasswordCommand())
	root.AddCommand(newSweepUploadsCommand())
	root.AddCommand(newGenKeysCommand())
	return root
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// withDB opens the database, runs fn and closes it again.
func withDB(ctx context.Context, fn func(db *sql.DB, logger *zap.Logger) error) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	db, err := database.Open(ctx, dbPath, database.Options{})
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, logger)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB, logger *zap.Logger) error {
				if err := database.Migrate(cmd.Context(), db, logger); err != nil {
					return err
				}
				v, err := database.Version(cmd.Context(), db, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
				return nil
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB, logger *zap.Logger) error {
				return database.Status(cmd.Context(), db, logger)
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default content into empty tables",
		Long: `seed applies migrations, then fills every still-empty About Us and
Home table with the default organization content. Tables that already
have rows are not touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB, logger *zap.Logger) error {
				if err := database.Migrate(cmd.Context(), db, logger); err != nil {
					return err
				}
				if err := bootstrap.SeedDefaults(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "default content ensured")
				return nil
			})
		},
	}
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for NGOHUB_ADMIN_PASSWORD_HASH",
		Long: `hash-password prints a bcrypt hash of the given password. With no
argument the password is read from the first line of stdin, which keeps it
out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return errors.New("password is empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newSweepUploadsCommand() *cobra.Command {
	var (
		uploadDir string
		grace     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sweep-uploads",
		Short: "Remove uploaded images no content refers to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB, logger *zap.Logger) error {
				up, err := uploads.New(uploadDir, "/uploads", 0, logger)
				if err != nil {
					return err
				}
				w := workers.NewUploadSweeper(up, workers.DBReferences(db), logger, time.Hour, grace)
				removed, err := w.Sweep(cmd.Context(), time.Now())
				if err != nil {
					return err
				}
				for _, p := range removed {
					fmt.Fprintln(cmd.OutOrStdout(), "removed", p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d orphaned uploads removed\n", len(removed))
				return nil
			})
		},
	}

	def := os.Getenv("NGOHUB_UPLOAD_DIR")
	if def == "" {
		def = "./uploads"
	}
	cmd.Flags().StringVar(&uploadDir, "upload-dir", def, "directory holding uploaded images")
	cmd.Flags().DurationVar(&grace, "grace", 24*time.Hour, "keep orphans younger than this")
	return cmd
}

func newGenKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-keys",
		Short: "Print random session and CSRF keys",
		Long: `gen-keys prints fresh values for NGOHUB_SESSION_KEY (64 hex characters)
and NGOHUB_CSRF_KEY (exactly 32 hex characters) in env file format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := securecookie.GenerateRandomKey(32)
			csrfKey := securecookie.GenerateRandomKey(16)
			if session == nil || csrfKey == nil {
				return errors.New("random source unavailable")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "NGOHUB_SESSION_KEY=%s\n", hex.EncodeToString(session))
			fmt.Fprintf(cmd.OutOrStdout(), "NGOHUB_CSRF_KEY=%s\n", hex.EncodeToString(csrfKey))
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
