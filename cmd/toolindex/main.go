package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/amitgawande/tools/internal/app"
	"github.com/amitgawande/tools/internal/config"
	"github.com/amitgawande/tools/internal/ui"
)

type CLI struct {
	NoColor  bool        `help:"Disable color output."`
	Path     string      `help:"Run as if in this directory."`
	Variant  string      `help:"Page layout: recency or unordered."`
	Output   string      `help:"Output file relative to the root."`
	Legacy   bool        `help:"Read tools from the Available Tools section of the root README."`
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the landing page (default)."`
	List     ListCmd     `cmd:"" help:"Print the tool catalog."`
	Check    CheckCmd    `cmd:"" help:"Lint tool READMEs."`
	Status   StatusCmd   `cmd:"" help:"Report whether the landing page is up to date."`
	Clean    CleanCmd    `cmd:"" help:"Remove the generated page and lockfile."`
	Init     InitCmd     `cmd:"" help:"Create toolindex.toml in this directory."`
}

type GenerateCmd struct {
	DryRun  bool `help:"Render without writing files."`
	Verbose bool `help:"Report every skipped directory."`
}

type ListCmd struct {
	Format string `help:"Output format." enum:"text,json,yaml,toml" default:"text" short:"f"`
}

type CheckCmd struct{}

type StatusCmd struct{}

type CleanCmd struct {
	DryRun bool `help:"Print actions without removing files."`
}

type InitCmd struct{}

type Context struct {
	Root     string
	Config   config.Config
	Reporter app.Reporter

	// Diagnostics receives warnings for commands that own stdout.
	Diagnostics app.Reporter
}

func (c *GenerateCmd) Run(ctx *Context) error {
	return app.Generate(ctx.Root, app.GenerateOptions{
		Config:   ctx.Config,
		DryRun:   c.DryRun,
		Verbose:  c.Verbose,
		Reporter: ctx.Reporter,
	})
}

func (c *ListCmd) Run(ctx *Context) error {
	return app.List(ctx.Root, app.ListOptions{
		Config:   ctx.Config,
		Format:   c.Format,
		Out:      os.Stdout,
		Reporter: ctx.Diagnostics,
	})
}

func (c *CheckCmd) Run(ctx *Context) error {
	return app.Check(ctx.Root, app.CheckOptions{Config: ctx.Config, Reporter: ctx.Reporter})
}

func (c *StatusCmd) Run(ctx *Context) error {
	return app.Status(ctx.Root, app.StatusOptions{Config: ctx.Config, Reporter: ctx.Reporter})
}

func (c *CleanCmd) Run(ctx *Context) error {
	return app.Clean(ctx.Root, app.CleanOptions{
		Config:   ctx.Config,
		DryRun:   c.DryRun,
		Reporter: ctx.Reporter,
	})
}

func (c *InitCmd) Run(ctx *Context) error {
	return app.Init(ctx.Root, app.InitOptions{Reporter: ctx.Reporter})
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("toolindex"),
		kong.Description("Build a landing page for a directory of self-contained web tools."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	baseDir, err := resolveBaseDir(cwd, cli.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root := app.FindRoot(baseDir)

	cfg, err := loadConfig(root, cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	noColor := cli.NoColor || os.Getenv("NO_COLOR") != ""
	reporter := ui.NewRenderer(ui.Options{NoColor: noColor, Out: os.Stdout})
	diagnostics := ui.NewRenderer(ui.Options{NoColor: noColor, Out: os.Stderr})

	if err := ctx.Run(&Context{Root: root, Config: cfg, Reporter: reporter, Diagnostics: diagnostics}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers command-line flags over toolindex.toml.
func loadConfig(root string, cli CLI) (config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}
	override := config.Config{
		Output: cli.Output,
		Render: config.RenderConfig{Variant: cli.Variant},
	}
	if cli.Legacy {
		legacy := true
		override.Catalog.Legacy = &legacy
	}
	cfg = config.Merge(cfg, override)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func resolveBaseDir(cwd, override string) (string, error) {
	if strings.TrimSpace(override) == "" {
		return cwd, nil
	}
	path := override
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}
	return path, nil
}
