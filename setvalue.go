// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"bindkit.dev/setvalue/config"
	"bindkit.dev/setvalue/directive"
	"bindkit.dev/setvalue/dom"
	"bindkit.dev/setvalue/logger"
	"bindkit.dev/setvalue/run"
	"bindkit.dev/setvalue/store"
)

const version = "0.3.0"

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "setvalue: %s\n", err)
		os.Exit(1)
	}
}

// command carries the state shared by the subcommands.
type command struct {
	v      *viper.Viper
	conf   *config.Config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &command{
		v:      config.NewViper(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	var configPath string
	root := &cobra.Command{
		Use:           "setvalue",
		Short:         "Compile and run set-value binding expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(configPath)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "configuration file (toml, yaml or json)")
	flags.Int("global-context", 0, "data context that $globals paths resolve against")
	flags.String("log-format", "auto", "log format: auto, console, logfmt or json")
	flags.String("log-level", "info", "log level")
	flags.StringSlice("debug", nil, "debug flags: "+strings.Join(config.DebugFlags, ", "))
	if err := c.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(c.compileCommand(), c.runCommand(), versionCommand(stdout))
	return root
}

func (c *command) setup(configPath string) error {
	conf, err := config.Load(c.v, configPath)
	if err != nil {
		return err
	}
	c.conf = conf
	logconf, err := logger.ParseConfig(c.conf.LogFormat(), c.conf.LogLevel())
	if err != nil {
		return err
	}
	c.log, err = logconf.New(c.stderr)
	return err
}

func (c *command) compileCommand() *cobra.Command {
	var contextID int
	cmd := &cobra.Command{
		Use:   "compile [flags] [expression...]",
		Short: "Print the generated function body of each binding",
		Long: `Compile prints the body of the async function(event, element) generated
for each binding expression. With no arguments, expressions are read from
standard input, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := directive.NewProvider(c.conf, nil, nil, nil)
			p.WithLogger(c.log)
			input := strings.Join(args, "\n")
			if len(args) == 0 {
				data, err := io.ReadAll(c.stdin)
				if err != nil {
					return err
				}
				input = string(data)
			}
			if !run.Compile(p, contextID, input, c.stdout, c.stderr) {
				return fmt.Errorf("compilation failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&contextID, "context", 1, "bound context identifier")
	return cmd
}

func (c *command) runCommand() *cobra.Command {
	var (
		pagePath  string
		selector  string
		eventType string
		detail    string
		contextID int
		render    bool
	)
	cmd := &cobra.Command{
		Use:   "run [flags] [expression...]",
		Short: "Fire an event on a page and print the resulting data",
		Long: `Run loads an HTML page and registers every event.setvalue attribute it
contains, plus each expression given as an argument, bound to the element
selected by --on. It then dispatches the event on that element and prints
the bound data context as YAML. With --html the page is printed as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pagePath == "" {
				return fmt.Errorf("--page is required")
			}
			if selector == "" {
				return fmt.Errorf("--on is required")
			}
			doc, err := loadPage(pagePath)
			if err != nil {
				return err
			}
			data := store.NewMemory()
			if path := c.conf.DataPath(); path != "" {
				if err := loadData(data, path, contextID); err != nil {
					return err
				}
			}
			pg := run.NewPage(c.conf, c.log, doc, data)
			if err := pg.BindMarkup(contextID); err != nil {
				return err
			}
			for _, expr := range args {
				if err := pg.Bind(selector, eventType, expr, contextID); err != nil {
					return err
				}
			}
			var d any
			if detail != "" {
				d = detail
			}
			if err := pg.Fire(cmd.Context(), selector, eventType, d, contextID); err != nil {
				return err
			}
			if err := data.Dump(contextID, c.stdout); err != nil {
				return err
			}
			if render {
				if err := doc.Render(c.stdout); err != nil {
					return err
				}
				fmt.Fprintln(c.stdout)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&pagePath, "page", "", "HTML page to load")
	flags.String("data", "", "YAML file seeding the bound data context")
	flags.StringVar(&selector, "on", "", "selector of the element to fire the event on")
	flags.StringVar(&eventType, "event", "click", "event type")
	flags.StringVar(&detail, "detail", "", "event detail")
	flags.IntVar(&contextID, "context", 1, "bound context identifier")
	flags.BoolVar(&render, "html", false, "print the page after the event")
	if err := c.v.BindPFlag("data", flags.Lookup("data")); err != nil {
		panic(err)
	}
	return cmd
}

func versionCommand(w io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the setvalue version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(w, "setvalue %s\n", version)
		},
	}
}

func loadPage(path string) (*dom.Document, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return dom.Parse(fd)
}

func loadData(data *store.Memory, path string, contextID int) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()
	return data.Load(contextID, fd)
}
