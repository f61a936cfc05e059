package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	cfgFile string
	opts    Options
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "qfe",
		Short:         "Site configuration for the quantitative finance digital garden",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(a.cfgFile, cmd)
			if err != nil {
				return err
			}
			a.opts = opts
			a.log, err = newLogger(cmd.ErrOrStderr(), opts.LogLevel)
			return err
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "options file (default is ./qfe.yaml)")
	root.PersistentFlags().String("project", "", "project directory holding the docs tree")
	root.PersistentFlags().String("docs", "", "docs directory, relative to the project")
	root.PersistentFlags().String("format", "", "config format: mts, json or yaml")
	root.PersistentFlags().String("log-level", "", "log level")

	root.AddCommand(
		a.printCmd(),
		a.generateCmd(),
		a.checkCmd(),
		a.pagesCmd(),
		a.generatorCmd("build", "Write the config and build the site"),
		a.generatorCmd("preview", "Write the config and preview the built site"),
	)
	return root
}

func (a *app) printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.opts.ConfigFormat()
			if err != nil {
				return err
			}
			data, err := Encode(Site(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *app) generate() error {
	format, err := a.opts.ConfigFormat()
	if err != nil {
		return err
	}
	path, err := WriteConfig(a.opts.ProjectDir, format)
	if err != nil {
		return err
	}
	a.log.Info().Str("path", path).Str("format", string(format)).Msg("wrote site config")
	return nil
}

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the site configuration for the generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate()
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail if the written configuration differs from the built-in one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.opts.ConfigFormat()
			if err != nil {
				return err
			}
			path := ConfigPath(a.opts.ProjectDir, format)
			got, err := DecodeFile(path)
			if err != nil {
				return err
			}
			if diff := Diff(Site(), got); diff != "" {
				a.log.Error().Str("path", path).Str("diff", diff).Msg("site config drifted (-want +got)")
				return fmt.Errorf("%s: %w", path, ErrDrift)
			}
			a.log.Info().Str("path", path).Msg("site config up to date")
			return nil
		},
	}
}

func (a *app) pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List navigation entries with the titles of their pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := PageIndex(Site(), a.opts.Docs())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tTEXT\tLINK\tTITLE")
			for _, e := range entries {
				title := e.Title
				if !e.Found {
					title = "-"
					a.log.Debug().Str("link", e.Link).Msg("no page found")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Section, e.Text, e.Link, title)
			}
			return w.Flush()
		},
	}
}

func (a *app) generatorCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.generate(); err != nil {
				return err
			}
			a.log.Info().Str("generator", a.opts.Generator).Str("action", action).Msg("running site generator")
			return RunGenerator(a.opts, action, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
