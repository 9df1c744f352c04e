package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/sunholo/typesolver/internal/checker"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/diagnostic"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Version info, set by ldflags during build.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:     "typecheck",
		Short:   "Constraint-based type checker demo CLI",
		Version: fmt.Sprintf("%s (%s)", Version, Commit),
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (defaults to built-in Config)")

	root.AddCommand(runCmd(&cfgPath), replCmd(&cfgPath), listCmd())
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Type-check one built-in scenario and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			return runScenario(cfg, args[0])
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range scenarios {
				fmt.Printf("%s  %s\n", bold(s.Name), s.Description)
			}
			return nil
		},
	}
}

func replCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively type-check built-in scenarios by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			return runREPL(cfg)
		},
	}
}

func runScenario(cfg *config.Config, name string) error {
	s, ok := findScenario(name)
	if !ok {
		return fmt.Errorf("unknown scenario %q (see `typecheck list`)", name)
	}

	expr := s.Build()
	registry := conformance.LoadBuiltins()
	collab := checker.Collaborators{
		Lookup:      registry,
		Conformance: registry,
		Defaults:    registry,
		Substitutor: registry,
	}

	node, sol, rep := checker.CheckExpr(context.Background(), cfg, collab, expr, s.Contextual)
	if rep != nil {
		printReport(rep)
		return nil
	}

	fmt.Printf("%s %s\n", cyan(s.Description), "=>")
	fmt.Printf("  %s\n", node.String())
	fmt.Printf("  %s %v\n", yellow("score:"), sol.Score)
	return nil
}

func printReport(rep *diagnostic.Report) {
	fmt.Printf("%s [%s] %s\n", red("type error"), rep.Code, rep.Message)
}

// runREPL lets a user type a scenario name at a prompt, repeatedly, the
// teacher's repl.go read-eval-print shape generalized from evaluating
// AILANG source to checking one of this CLI's built-in scenarios.
func runREPL(cfg *config.Config) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(bold("typecheck REPL") + " — type a scenario name, \"list\", or \"exit\"")
	for {
		input, err := line.Prompt("typecheck> ")
		if err != nil {
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case "exit", "quit":
			return nil
		case "list":
			for _, s := range scenarios {
				fmt.Printf("%s  %s\n", bold(s.Name), s.Description)
			}
		default:
			if err := runScenario(cfg, input); err != nil {
				fmt.Fprintln(os.Stderr, red("Error:"), err)
			}
		}
	}
}

var _ = green // reserved for future success-path coloring
