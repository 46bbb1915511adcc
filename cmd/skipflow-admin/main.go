// Command skipflow-admin is an operator CLI for one-off tasks: applying
// migrations, seeding development data, and managing tenant accounting
// connections. It reads the same environment configuration as the server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/skipflow/skipflow-go/config"
	"github.com/skipflow/skipflow-go/internal/bootstrap"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/devseed"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultCommandTimeout)
	defer cancel()

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, Config: cfg}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.Error("command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must signal command failure to shell scripts
	}
}

func commands() map[string]command {
	cmds := []command{
		{name: "migrate", description: "apply pending database migrations", run: runMigrate},
		{name: "seed", description: "seed the demo tenant with development data", run: runSeed},
		{name: "tenants", description: "list tenants", run: runTenants},
		{name: "connect", description: "store a tenant's accounting connection credentials", run: runConnect},
	}
	out := make(map[string]command, len(cmds))
	for _, c := range cmds {
		out[c.name] = c
	}
	return out
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: skipflow-admin <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = w.Flush()
}

func connectDB(ctx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: ctx.Config.Postgres,
		Logger:   ctx.Logger,
	})
}

func runMigrate(ctx *commandContext, _ []string) error {
	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return bootstrap.RunMigrations(ctx.Ctx, db, ctx.Logger)
}

func runSeed(ctx *commandContext, _ []string) error {
	if !ctx.Config.IsDev {
		return fmt.Errorf("seed is only allowed in development (set DEV=true)")
	}
	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := bootstrap.RunMigrations(ctx.Ctx, db, ctx.Logger); err != nil {
		return err
	}
	return devseed.Seed(ctx.Ctx, db, ctx.Logger)
}

func runTenants(ctx *commandContext, _ []string) error {
	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx.Ctx,
		`SELECT id, name, created_at FROM tenants ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for rows.Next() {
		var id, name string
		var created time.Time
		if err := rows.Scan(&id, &name, &created); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, name, created.Format(time.RFC3339))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return w.Flush()
}

func runConnect(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("connect", flag.ContinueOnError)
	tenantID := fs.String("tenant", "", "tenant id (required)")
	orgID := fs.String("org", "", "accounting organization id (required)")
	refreshToken := fs.String("refresh-token", "", "OAuth refresh token (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tenantID == "" || *orgID == "" || *refreshToken == "" {
		fs.Usage()
		return fmt.Errorf("-tenant, -org, and -refresh-token are required")
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	encryptor := bootstrap.CreateEncryptor(ctx.Config.Accounting.EncryptionKey, ctx.Logger)
	repo := data.NewConnectionRepo(db, encryptor)

	// An expired access token forces a refresh on first use, which validates
	// the refresh token against the provider.
	err = repo.Save(ctx.Ctx, &model.AccountingConnection{
		TenantID:     *tenantID,
		OrgID:        *orgID,
		RefreshToken: *refreshToken,
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	})
	if err != nil {
		return fmt.Errorf("save connection: %w", err)
	}

	ctx.Logger.Info("accounting connection saved", "tenant_id", *tenantID, "org_id", *orgID)
	return nil
}
