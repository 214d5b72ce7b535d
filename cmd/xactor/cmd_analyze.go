package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xrecipe"
	"github.com/xiaoshicae/xactor/xserver"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var analyzeFlags struct {
	file     string
	pipeline string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a recipe file",
	Long: `Read a recipe from a YAML or JSON file and print the merged result as JSON.

Usage:
  xactor analyze -f pancakes.yaml                          # nutrition, sustainability and seasonality
  xactor analyze -f pancakes.yaml -p "Recipe Processing"   # run a single pipeline
  cat pancakes.yaml | xactor analyze -f -                  # read from stdin`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.file, "file", "f", "", "Recipe file (YAML or JSON), - for stdin")
	f.StringVarP(&analyzeFlags.pipeline, "pipeline", "p", "", "Pipeline name (default: concurrent analysis)")
	_ = analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, _ []string) (err error) {
	recipe, err := readRecipe(cmd.InOrStdin(), analyzeFlags.file)
	if err != nil {
		return err
	}

	if err := xserver.R(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, xserver.Shutdown())
	}()

	analyzer, err := xrecipe.NewAnalyzer()
	if err != nil {
		return err
	}

	var out xpipeline.Data
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if analyzeFlags.pipeline == "" {
		out, err = analyzer.Analyze(ctx, recipe)
	} else {
		out, err = analyzer.Process(ctx, analyzeFlags.pipeline, recipe)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readRecipe(stdin io.Reader, file string) (*xrecipe.Recipe, error) {
	var (
		b   []byte
		err error
	)
	if file == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read recipe failed, file=[%s], err=[%w]", file, err)
	}

	recipe := &xrecipe.Recipe{}
	if err := yaml.Unmarshal(b, recipe); err != nil {
		return nil, fmt.Errorf("parse recipe failed, file=[%s], err=[%w]", file, err)
	}
	return recipe, nil
}
