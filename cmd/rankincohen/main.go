// Command rankincohen computes one Rankin-Cohen bracket and prints it.
//
// With no configuration it prints [E4, E4]_2 for weights k = l = 4.
// Settings come from an optional YAML file named by RANKINCOHEN_CONFIG and
// from RANKINCOHEN_* environment variables:
//
//	RANKINCOHEN_BRACKET_F=E4 RANKINCOHEN_BRACKET_G=E6 \
//	RANKINCOHEN_BRACKET_L=6 RANKINCOHEN_BRACKET_N=1 go run ./cmd/rankincohen
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/njchilds90/rankincohen"
	"github.com/njchilds90/rankincohen/internal/config"
	"github.com/njchilds90/rankincohen/internal/logger"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Getenv(config.FileEnv)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Log.Level, stderr).With("correlation_id", uuid.New().String())

	alg := rankincohen.NewSymbolic()
	ring, err := rankincohen.NewRing(alg, rankincohen.WithLogger(log))
	if err != nil {
		return err
	}

	f, err := resolveForm(ring, alg, cfg.Bracket.F)
	if err != nil {
		return fmt.Errorf("form f: %w", err)
	}
	g, err := resolveForm(ring, alg, cfg.Bracket.G)
	if err != nil {
		return fmt.Errorf("form g: %w", err)
	}

	b := cfg.Bracket
	log.Info("computing bracket", "f", f.String(), "g", g.String(), "n", b.N, "k", b.K, "l", b.L)
	result, err := ring.Bracket(f, g, b.N, b.K, b.L)
	if err != nil {
		return err
	}

	out, err := render(alg, cfg, f, g, result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// resolveForm accepts a generator name or a gosymbol JSON tree.
func resolveForm(ring *rankincohen.Ring, alg *rankincohen.Symbolic, form string) (rankincohen.Expr, error) {
	form = strings.TrimSpace(form)
	if gen, ok := rankincohen.ParseGenerator(form); ok {
		return ring.Gen(gen), nil
	}
	if strings.HasPrefix(form, "{") {
		return alg.Parse(form)
	}
	return nil, fmt.Errorf("%w: %q is neither a generator name nor a JSON expression",
		rankincohen.ErrInvalidExpressionKind, form)
}

type jsonReport struct {
	F      string          `json:"f"`
	G      string          `json:"g"`
	N      int             `json:"n"`
	K      int             `json:"k"`
	L      int             `json:"l"`
	Weight int             `json:"weight"`
	Result string          `json:"result"`
	Expr   json.RawMessage `json:"expr"`
}

func render(alg *rankincohen.Symbolic, cfg *config.Config, f, g, result rankincohen.Expr) (string, error) {
	switch cfg.Output.Format {
	case "latex":
		return alg.LaTeX(result)
	case "json":
		tree, err := alg.JSON(result)
		if err != nil {
			return "", err
		}
		b := cfg.Bracket
		doc, err := json.MarshalIndent(jsonReport{
			F:      f.String(),
			G:      g.String(),
			N:      b.N,
			K:      b.K,
			L:      b.L,
			Weight: b.K + b.L + 2*b.N,
			Result: result.String(),
			Expr:   json.RawMessage(tree),
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}
		return string(doc), nil
	}
	return result.String(), nil
}
