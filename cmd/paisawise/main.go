package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/paisawise/pw-mobile-go/config"
	"github.com/paisawise/pw-mobile-go/internal/bootstrap"
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
	Client *bootstrap.Client
}

func commands() map[string]command {
	cmds := []command{
		{name: "login", description: "Sign in via the identity provider", run: runLogin},
		{name: "logout", description: "Sign out and clear the stored session", run: runLogout},
		{name: "status", description: "Show the current session", run: runStatus},
		{name: "dashboard", description: "Show the home dashboard data", run: runDashboard},
		{name: "record", description: "Record a transaction", run: runRecord},
		{name: "transactions", description: "List recent transactions", run: runTransactions},
		{name: "profile", description: "Show the financial profile", run: runProfile},
		{name: "offers", description: "List partner offers", run: runOffers},
		{name: "insight", description: "Show this month's spending insight", run: runInsight},
	}
	out := make(map[string]command, len(cmds))
	for _, c := range cmds {
		out[c.name] = c
	}
	return out
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: paisawise <command> [flags]") //nolint:errcheck
	fmt.Fprintln(os.Stderr, "\ncommands:")                       //nolint:errcheck
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-13s %s\n", name, cmds[name].description) //nolint:errcheck
	}
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided.
	}
	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName) //nolint:errcheck
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown.
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts.
	}

	client, err := bootstrap.NewClient(ctx, &cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "build client", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI cannot run without a constructed client.
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close client", "error", cerr)
		}
	}()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Client: client,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI surfaces command failure via exit status.
	}
}
