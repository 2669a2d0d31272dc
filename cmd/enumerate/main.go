// Package main provides the enumerate binary entry point.
// enumerate inspects the enumerations a definitions file declares,
// derives database constraints from them and serves them over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/http/handler"
	"github.com/xy-planning-network/enumerate/logger"
	"github.com/xy-planning-network/enumerate/postgres"
	"golang.org/x/text/language"
)

const shutdownTimeout = 10 * time.Second

var (
	bold      = color.New(color.Bold)
	faint     = color.New(color.Faint)
	keyColor  = color.New(color.FgCyan)
	codeColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Inspect, serve and constrain enumerations",
		Long: `enumerate reads the enumerations declared in a YAML definitions file
(ENUMERATE_DEFINITIONS, enumerations.yml by default) and:

- lists and shows them, labelled in any locale the translations file carries
- prints or applies the SQL constraining columns to their codes
- serves them as JSON over HTTP`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of environment variables to load")

	load := func() (*app, error) { return newApp(envFile) }
	cmd.AddCommand(
		listCmd(load),
		showCmd(load),
		sqlCmd(load),
		serveCmd(load),
		migrateCmd(load),
	)

	return cmd
}

func listCmd(load func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the names of every enumeration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range a.reg.Names() {
				d, _ := a.reg.Lookup(name)
				bold.Fprint(out, name)
				faint.Fprintf(out, " (%d values, sorted by %s)\n", d.Len(), d.SortBy())
			}

			return nil
		},
	}
}

func showCmd(load func() (*app, error)) *cobra.Command {
	var (
		sort   string
		locale string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the values of an enumeration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			d, err := a.reg.Lookup(args[0])
			if err != nil {
				return err
			}

			sb := d.SortBy()
			if sort != "" {
				if sb, err = enumerate.ParseSortBy(sort); err != nil {
					return err
				}
			}

			tag := a.cfg.Locale
			if locale != "" {
				if tag, err = language.Parse(locale); err != nil {
					return fmt.Errorf("%w: locale %q: %s", enumerate.ErrNotValid, locale, err)
				}
			}

			out := cmd.OutOrStdout()
			entries := d.EntriesIn(tag, sb)
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(handler.Enumeration{Name: d.Name(), Sort: sb, Locale: tag.String(), Entries: entries})
			}

			printEntries(out, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "Order values by none, value, key or label")
	cmd.Flags().StringVar(&locale, "locale", "", "Label values in this BCP 47 locale")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func printEntries(out io.Writer, entries []enumerate.Entry) {
	keyWidth, codeWidth := 0, 0
	for _, e := range entries {
		keyWidth = max(keyWidth, len(e.Key))
		codeWidth = max(codeWidth, len(fmt.Sprint(e.Value)))
	}

	for _, e := range entries {
		keyColor.Fprintf(out, "%-*s", keyWidth, e.Key)
		fmt.Fprint(out, "  ")
		codeColor.Fprintf(out, "%-*v", codeWidth, e.Value)
		fmt.Fprintf(out, "  %s\n", e.Label)
	}
}

func sqlCmd(load func() (*app, error)) *cobra.Command {
	var flags constraintFlags

	cmd := &cobra.Command{
		Use:   "sql NAME",
		Short: "Print the SQL constraining a column to an enumeration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			_, stmt, err := a.constraint(args[0], flags)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), stmt+";")
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.table, "table", "", "Table holding the column")
	cmd.Flags().StringVar(&flags.column, "column", "", "Column holding codes, defaults to NAME")
	cmd.Flags().BoolVar(&flags.required, "required", false, "Disallow the zero value")
	cmd.Flags().BoolVar(&flags.enumType, "enum-type", false, "Print a CREATE TYPE statement instead")

	return cmd
}

func serveCmd(load func() (*app, error)) *cobra.Command {
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the enumerations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              a.cfg.HTTPAddr,
				Handler:           handler.New(a.reg, handler.WithLogger(a.log), handler.WithOrigins(origins...)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			return serve(ctx, srv, a.log)
		},
	}

	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Origins allowed to make cross-origin requests")

	return cmd
}

// serve runs srv until ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errs := make(chan error, 1)
	go func() {
		log.Info("serving enumerations", &logger.LogContext{Data: map[string]any{"addr": srv.Addr}})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, open := <-errs:
		if open {
			return err
		}

		return nil

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}

func migrateCmd(load func() (*app, error)) *cobra.Command {
	var flags constraintFlags

	cmd := &cobra.Command{
		Use:   "migrate NAME",
		Short: "Constrain a PostgreSQL column to an enumeration",
		Long: `migrate connects to the database the DATABASE_ environment variables describe
and adds a CHECK constraint to the column, or creates an ENUM type with --enum-type.
Constraints already applied are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			m, _, err := a.constraint(args[0], flags)
			if err != nil {
				return err
			}

			db, err := postgres.Connect(postgres.NewCxnConfig(a.cfg.Env), a.cfg.Env)
			if err != nil {
				return fmt.Errorf("%w: connecting: %s", enumerate.ErrUnexpected, err)
			}

			if err := postgres.MigrateUp(db, []postgres.Migration{m}); err != nil {
				return err
			}

			okColor.Fprintf(cmd.OutOrStdout(), "applied %s\n", m.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.table, "table", "", "Table holding the column")
	cmd.Flags().StringVar(&flags.column, "column", "", "Column holding codes, defaults to NAME")
	cmd.Flags().BoolVar(&flags.required, "required", false, "Disallow the zero value")
	cmd.Flags().BoolVar(&flags.enumType, "enum-type", false, "Create an ENUM type instead")

	return cmd
}
