package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geovalidate/geovalidate/internal/config"
	"github.com/geovalidate/geovalidate/pkg/geobackend"
	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

func validateCommand() *cobra.Command {
	var (
		filePath   string
		layerName  string
		tableName  string
		configFile string
		streamPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run all configured checks against a GeoJSON layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}

			layer, err := loadLayer(filePath)
			if err != nil {
				return err
			}
			if layerName == "" {
				layerName = "default"
			}

			ds := geobackend.NewDataset()
			ds.Layers[layerName] = layer

			eng := geovalidate.NewEngine()
			result, err := eng.Validate(cmd.Context(), ds, geovalidate.Request{
				FilePath:      filePath,
				LayerID:       layerName,
				TableName:     tableName,
				Criteria:      cfg.Criteria,
				Checks:        cfg.Checks,
				StreamingPath: streamPath,
			})
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			return printResult(result)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to a GeoJSON FeatureCollection")
	cmd.Flags().StringVarP(&layerName, "layer", "l", "default", "layer identifier to report against")
	cmd.Flags().StringVarP(&tableName, "table", "t", "", "table/object-class name used in error messages")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a YAML threshold/check configuration file")
	cmd.Flags().StringVar(&streamPath, "stream", "", "write errors as JSONL to this path instead of buffering")
	cmd.MarkFlagRequired("file")

	return cmd
}

func printResult(result geovalidate.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.IsValid {
		return fmt.Errorf("validation found %d error(s)", result.ErrorCount)
	}
	return nil
}
