package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ghodss/yaml"
	"github.com/spf13/pflag"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/runner"
	"github.com/relplan/relplan/vcs"
	"github.com/relplan/relplan/vcs/gitcli"
	"github.com/relplan/relplan/vcs/gogit"
)

var (
	// overridden by go build -X
	Version string
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return runWithTerminalIO(rawArgs, nil)
}

func runWithTerminalIO(rawArgs []string, termio *config.TerminalIO) error {
	// flag values are layered over the config file and environment below
	flagCfg := &config.Config{}

	var help bool
	var version bool
	var cfgFile string
	var jsonOut bool
	var checkCommits []string
	var checkCommitsFromVCS bool
	var readStats bool
	var readAllStats bool
	var printConfig bool
	var printLatest bool
	flags := pflag.NewFlagSet("relplan", pflag.ContinueOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.StringVarP(&flagCfg.Dir, "dir", "C", "", "read the repository in `dir`")
	flags.StringVar(&flagCfg.Backend, "backend", "", "read history with `backend` (git or go-git)")
	flags.StringVar(&flagCfg.Policy, "policy", "", "classify commits with the `name`d policy")
	flags.StringVar(&flagCfg.TemplatePath, "template", "", "render release notes from the template at `path`")
	flags.StringVar(&flagCfg.Repository, "repository", "", "hosting repository `owner/name`, for compare links")
	flags.StringVarP(&flagCfg.OutputPath, "output", "o", "", "also write the plan as JSON to `file`")
	flags.StringVar(&flagCfg.GitHubOutput, "github-output", "", "append plan outputs to the GitHub Actions output `file`")
	flags.StringArrayVar(&flagCfg.AllowedScopes, "allowed-scope", nil, "declare allowed scopes' `name`s")
	flags.StringArrayVar(&flagCfg.AllowedTypes, "allowed-type", nil, "declare allowed commit `type`s")
	flags.BoolVar(&jsonOut, "json", false, "print the plan as JSON even on a terminal")
	flags.StringArrayVar(&checkCommits, "check-commit", nil, "only validate provided commit `message` (- reads stdin)")
	flags.BoolVar(&checkCommitsFromVCS, "check", false, "only validate commits since last release")
	flags.BoolVarP(&readStats, "stats", "S", false, "print stats for commits since last release")
	flags.BoolVarP(&readAllStats, "stats-all", "A", false, "print stats for the full history")
	flags.BoolVar(&printConfig, "print-config", false, "print configuration and exit")
	flags.BoolVar(&printLatest, "latest", false, "print latest release tag and exit")
	flags.BoolVarP(&flagCfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&flagCfg.Quiet, "quiet", "q", false, "print as little as necessary")

	if err := flags.Parse(rawArgs[1:]); err != nil {
		return err
	}
	if termio == nil {
		termio = &config.DefaultTermIO
	}
	cfg := config.NewWithTerminalIO(nil, termio)

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}

	dir := flagCfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}
	fileCfg, err := config.ReadFile(cfgFile, dir)
	if err != nil {
		return err
	}
	envCfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	for _, layer := range []*config.Config{fileCfg, envCfg, flagCfg} {
		if err := cfg.Merge(layer); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return cfg.GetPolicy().TextSummary(cfg.Term.Stdout)
	}
	// done setting up config
	if cfg.Dir == "" {
		cfg.Dir = dir
	}

	vc, err := openVCS(cfg)
	if err != nil {
		return err
	}
	rnr, err := runner.New(cfg, vc)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if readStats || readAllStats {
		stats, err := rnr.Stats(ctx, readAllStats)
		if err != nil {
			return err
		}
		return stats.TextSummary(cfg.Term.Stdout)
	}

	if checkCommitsFromVCS || flags.Lookup("check-commit").Changed {
		hasPipe := !cfg.Term.StdinIsTerminal()
		var err error
		if checkCommitsFromVCS {
			err = rnr.CheckCommitsFromVCS(ctx)
		} else if hasPipe && len(checkCommits) == 1 && checkCommits[0] == "-" {
			err = rnr.CheckReadMessage(ctx, cfg.Term.Stdin)
		} else {
			err = rnr.CheckMessages(ctx, checkCommits)
		}
		if err != nil {
			cf := runner.CheckFailure{}
			if errors.As(err, &cf) {
				if err := cf.WriteFailure(cfg.Term.Stdout); err != nil {
					cfg.Errorf("failed to write invalid commit information: %v", err)
				}
			}
			return err
		}
		cfg.Printf("OK")
		return nil
	}

	if printLatest {
		latest, err := rnr.LatestRelease(ctx)
		if err != nil {
			return err
		}
		if latest != "" {
			fmt.Fprintln(cfg.Term.Stdout, latest)
		}
		return nil
	}

	plan, err := rnr.Plan(ctx)
	if err != nil {
		return err
	}
	if cfg.OutputPath != "" {
		if err := plan.WriteFile(cfg.OutputPath); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
		cfg.Debugf("wrote plan to %s", cfg.OutputPath)
	}
	if cfg.GitHubOutput != "" {
		if err := plan.AppendGitHubOutput(cfg.GitHubOutput); err != nil {
			return fmt.Errorf("failed to write github output: %w", err)
		}
	}

	if jsonOut || !cfg.Term.StdoutIsTerminal() {
		return plan.WriteJSONLine(cfg.Term.Stdout)
	}
	printSummary(cfg, plan)
	return nil
}

func openVCS(cfg config.Config) (vcs.Interface, error) {
	switch cfg.Backend {
	case config.BackendGoGit:
		return gogit.Open(cfg, cfg.Dir)
	default:
		return gitcli.New(cfg, cfg.Dir), nil
	}
}

func printSummary(cfg config.Config, plan runner.ReleasePlan) {
	bold := color.New(color.Bold).SprintFunc()
	w := cfg.Term.Stdout

	prev := plan.PreviousTag
	if prev == "" {
		prev = "(none)"
	}
	fmt.Fprintf(w, "%s %s (%d commits)\n", bold("previous:"), prev, plan.CommitCount)
	fmt.Fprintf(w, "%s %s\n", bold("bump:    "), bumpColor(plan.Bump.String()).Sprint(plan.Bump))
	fmt.Fprintf(w, "%s %s\n", bold("next:    "), plan.NewTag)
	if plan.NotesMarkdown != "" {
		fmt.Fprintf(w, "\n%s", plan.NotesMarkdown)
	}
}

func bumpColor(bump string) *color.Color {
	switch bump {
	case "major":
		return color.New(color.FgRed, color.Bold)
	case "minor":
		return color.New(color.FgYellow)
	case "patch":
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [flags]

Plan the next release from the Conventional Commits since the latest v*
tag: the bump kind, the next version and tag, and release notes.

FLAGS
%s

ENVIRONMENT
  RELEASE_NOTES_TEMPLATE   same as --template
  GITHUB_REPOSITORY        same as --repository
  OUT_JSON                 same as --output
  GITHUB_OUTPUT            same as --github-output

EXAMPLES

# print the plan for the current repository
$ relplan --json

# render notes from a template and save the plan
$ relplan --template .github/release.md -o dist/plan.json

# validate commits since the last release
$ relplan --check
`, "relplan", flags.FlagUsages())
}
