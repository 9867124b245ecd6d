package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	applog "github.com/portalcc/licensetui/internal/log"
	"github.com/portalcc/licensetui/internal/tui"
	"github.com/portalcc/licensetui/portal"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

func loadTheme(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	theme, err := tui.LoadTheme(f)
	if err != nil {
		return err
	}
	tui.CurrentTheme = theme
	return nil
}

func loadAccounts(path string) (*portal.Authenticator, error) {
	var (
		accounts []portal.Account
		err      error
	)
	if path == "" {
		accounts, err = portal.DefaultAccounts()
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		accounts, err = portal.LoadAccounts(f)
	}
	if err != nil {
		return nil, err
	}
	return portal.NewAuthenticator(accounts...), nil
}

// addListFlags registers the flags shared by the list subcommands.
func addListFlags(fs *flag.FlagSet, opts *listOptions) {
	fs.BoolVar(&opts.JSON, "json", false, "output in JSON format")
	fs.StringVar(&opts.Sort, "sort", "", "column to sort by")
	fs.BoolVar(&opts.Desc, "desc", false, "sort in descending order")
}

// main is the entry point of the application
func main() {
	var (
		rootFlagSet = flag.NewFlagSet("licensetui", flag.ExitOnError)
		apiURL      = rootFlagSet.String("api", "http://localhost:5000", "base URL of the licensing API (env: LICENSETUI_API)")
		timeout     = rootFlagSet.Duration("timeout", tui.DefaultTimeout, "timeout of each API request (env: LICENSETUI_TIMEOUT)")
		theme       = rootFlagSet.String("theme", "", "path to theme toml file (env: LICENSETUI_THEME)")
		accounts    = rootFlagSet.String("accounts", "", "path to accounts toml file (env: LICENSETUI_ACCOUNTS)")
		logFile     = rootFlagSet.String("log-file", "licensetui.log", "file to write logs to, empty to disable (env: LICENSETUI_LOG_FILE)")
		debug       = rootFlagSet.Bool("debug", false, "log every API request (env: LICENSETUI_DEBUG)")
		version     = rootFlagSet.Bool("version", false, "display version")
	)

	var (
		b      portal.Backend
		auth   *portal.Authenticator
		logger *slog.Logger
	)

	var schoolsOpts listOptions
	schoolsFlagSet := flag.NewFlagSet("schools", flag.ExitOnError)
	addListFlags(schoolsFlagSet, &schoolsOpts)
	schoolsFlagSet.StringVar(&schoolsOpts.Search, "search", "", "only schools whose name or email contains this")
	schoolsCmd := &ffcli.Command{
		Name:       "schools",
		ShortUsage: "licensetui schools [-json] [-search q] [-sort key] [-desc]",
		ShortHelp:  "List schools",
		FlagSet:    schoolsFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			return runSchools(ctx, os.Stdout, b, schoolsOpts)
		},
	}

	var licensesOpts listOptions
	licensesFlagSet := flag.NewFlagSet("licenses", flag.ExitOnError)
	addListFlags(licensesFlagSet, &licensesOpts)
	licensesCmd := &ffcli.Command{
		Name:       "licenses",
		ShortUsage: "licensetui licenses [-json] [-sort key] [-desc] <schoolID>",
		ShortHelp:  "List the licenses of a school",
		FlagSet:    licensesFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("licenses requires a school id")
			}
			return runLicenses(ctx, os.Stdout, b, time.Now(), args[0], licensesOpts)
		},
	}

	renewFlagSet := flag.NewFlagSet("renew", flag.ExitOnError)
	renewEmail := renewFlagSet.String("email", "", "email of an admin account")
	renewPassword := renewFlagSet.String("password", "", "password of the account (env: LICENSETUI_PASSWORD)")
	renewCmd := &ffcli.Command{
		Name:       "renew",
		ShortUsage: "licensetui renew -email e -password p <schoolID> <licenseID>",
		ShortHelp:  "Renew a license by one year",
		FlagSet:    renewFlagSet,
		Options:    []ff.Option{ff.WithEnvVarPrefix("LICENSETUI")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("renew requires a school id and a license id")
			}
			return runRenew(ctx, os.Stdout, b, auth, time.Now(), *renewEmail, *renewPassword, args[0], args[1])
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "licensetui [flags] <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("LICENSETUI")},
		Subcommands: []*ffcli.Command{schoolsCmd, licensesCmd, renewCmd},
		Exec: func(ctx context.Context, args []string) error {
			return runTUI(tui.Config{
				Backend:       b,
				Authenticator: auth,
				Logger:        logger,
				Timeout:       *timeout,
			})
		},
	}

	if err := root.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	if err := loadTheme(*theme); err != nil {
		fmt.Fprintf(os.Stderr, "error loading theme: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	handler, closer, err := applog.OpenFile(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	logger = applog.Init(handler)

	auth, err = loadAccounts(*accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading accounts: %v\n", err)
		os.Exit(1)
	}

	b, err = GetBackend(*apiURL, *timeout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := root.Run(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		closer.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
