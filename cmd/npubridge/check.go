package main

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/mbaret/npubridge/internal/bridge"
	"github.com/mbaret/npubridge/internal/ir"
)

type checkResult struct {
	Pattern    string   `json:"pattern"`
	Supported  bool     `json:"supported"`
	Violations []string `json:"violations,omitempty"`
}

func checkCmd() *cli.Command {
	var (
		input      string
		pattern    string
		jsonOutput bool
		hardware   bool
		logLevel   string
		logFormat  string
	)

	return &cli.Command{
		Name:  "check",
		Usage: "Check whether a fused subgraph expression is offloadable",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Usage:       "expression JSON file (- for stdin)",
				Value:       "-",
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "pattern",
				Usage:       "pattern kind: auto, convolution, concatenation, split",
				Value:       "auto",
				Destination: &pattern,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the verdict as JSON",
				Destination: &jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "hardware",
				Usage:       "declare real target hardware present",
				Destination: &hardware,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (auto, text, json)",
				Value:       "auto",
				Destination: &logFormat,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			if cfg.Hardware != nil && !cmd.IsSet("hardware") {
				hardware = *cfg.Hardware
			}
			if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
				logLevel = cfg.LogLevel
			}
			if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
				logFormat = cfg.LogFormat
			}
			log := newLogger(logLevel, logFormat)

			data, err := readInput(input)
			if err != nil {
				return err
			}
			expr, err := ir.UnmarshalExpr(data)
			if err != nil {
				return fmt.Errorf("decoding expression: %w", err)
			}

			checker := bridge.NewChecker(bridge.CheckerConfig{Hardware: hardware, Logger: log})
			kind, err := resolveKind(pattern, expr)
			if err != nil {
				return err
			}

			var (
				supported  bool
				violations bridge.Violations
			)
			switch kind {
			case bridge.KindConvolution:
				supported, violations = checker.ConvolutionSupported(expr)
			case bridge.KindConcatenation:
				supported, violations = checker.ConcatenateSupported(expr)
			case bridge.KindSplit:
				supported, violations = checker.SplitSupported(expr)
			}

			result := checkResult{
				Pattern:    string(kind),
				Supported:  supported,
				Violations: violations.Reasons(),
			}
			if jsonOutput {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			fmt.Printf("pattern:   %s\n", result.Pattern)
			fmt.Printf("supported: %v\n", result.Supported)
			for _, reason := range result.Violations {
				fmt.Printf("  - %s\n", reason)
			}
			return nil
		},
	}
}

func resolveKind(pattern string, expr ir.Expr) (bridge.PatternKind, error) {
	switch pattern {
	case "auto":
		kind := bridge.DetectKind(expr)
		if kind == bridge.KindUnknown {
			return kind, fmt.Errorf("expression does not match any supported pattern")
		}
		return kind, nil
	case "convolution":
		return bridge.KindConvolution, nil
	case "concatenation":
		return bridge.KindConcatenation, nil
	case "split":
		return bridge.KindSplit, nil
	}
	return bridge.KindUnknown, fmt.Errorf("unknown pattern %q", pattern)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
