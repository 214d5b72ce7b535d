package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xiaoshicae/xactor/xrecipe"
	"github.com/xiaoshicae/xactor/xserver"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var pipelinesFlags struct {
	output string
}

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "List pipeline definitions",
	Long:  "Print the built-in pipeline definitions merged with the XPipeline.Definitions section of application.yml.",
	Args:  cobra.NoArgs,
	RunE:  runPipelines,
}

func runPipelines(cmd *cobra.Command, _ []string) (err error) {
	if err := xserver.R(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, xserver.Shutdown())
	}()
	defs := xrecipe.Definitions()

	switch pipelinesFlags.output {
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	default:
		return fmt.Errorf("unsupported output [%s], expected yaml or json", pipelinesFlags.output)
	}
}

func init() {
	pipelinesCmd.Flags().StringVarP(&pipelinesFlags.output, "output", "o", "yaml", "Output format: yaml or json")
}
