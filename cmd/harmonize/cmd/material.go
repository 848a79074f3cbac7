package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erphub/harmonize"
	"github.com/erphub/harmonize/pkg/pipeline"
)

// NewMaterialCommand creates the material command with app dependencies.
func NewMaterialCommand(app AppContext) *cobra.Command {
	var params harmonize.Params

	c := &cobra.Command{
		Use:   "material",
		Short: "Run the local-material pipeline",
		Long: `Material runs the local-material pipeline: it reads the MARA, MBEW,
MARC, T001W, T001K and T001 entity files from the data directory,
prepares and joins them, and writes one unified CSV file.`,
		Example: `  harmonize material --data-dir ./data/system_a --system-name system_a --output-dir ./out
  harmonize material --data-dir ./data/system_b --system-name system_b --output-dir ./out --global-material-column ZZA0PMATNR`,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := app.Harmonizer().LocalMaterial(c.Context(), params)
			if err != nil {
				return err
			}
			app.Logger().Info().Str("path", path).Msg("local material written")
			return nil
		},
	}

	c.Flags().StringVar(&params.DataDir, "data-dir", viper.GetString("data_dir"), "directory holding one CSV file per source entity")
	c.Flags().StringVar(&params.SystemName, "system-name", viper.GetString("system_name"), "source ERP system identifier stamped on every output row")
	c.Flags().StringVar(&params.OutputDir, "output-dir", viper.GetString("output_dir"), "directory receiving the output file")
	c.Flags().StringVar(&params.FileName, "file-name", pipeline.DefaultFileName, "output file base name, without extension")
	c.Flags().StringVar(&params.GlobalMaterialColumn, "global-material-column", viper.GetString("global_material_column"), "source column holding the global material number (default ZZMDGM)")

	return c
}
