package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erphub/harmonize"
	"github.com/erphub/harmonize/pkg/pipeline"
)

// NewOrderCommand creates the order command with app dependencies.
func NewOrderCommand(app AppContext) *cobra.Command {
	var params harmonize.Params

	c := &cobra.Command{
		Use:   "order",
		Short: "Run the process-order pipeline",
		Long: `Order runs the process-order pipeline: it reads the AFKO, AFPO, AUFK
and MARA entity files from the data directory, prepares and joins them,
derives the order timing flags, and writes one unified CSV file. A CDPOS
change-document file is joined when present.`,
		Example: `  harmonize order --data-dir ./data/system_a --system-name system_a --output-dir ./out`,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := app.Harmonizer().ProcessOrder(c.Context(), params)
			if err != nil {
				return err
			}
			app.Logger().Info().Str("path", path).Msg("process order written")
			return nil
		},
	}

	c.Flags().StringVar(&params.DataDir, "data-dir", viper.GetString("data_dir"), "directory holding one CSV file per source entity")
	c.Flags().StringVar(&params.SystemName, "system-name", viper.GetString("system_name"), "source ERP system identifier stamped on every output row")
	c.Flags().StringVar(&params.OutputDir, "output-dir", viper.GetString("output_dir"), "directory receiving the output file")
	c.Flags().StringVar(&params.FileName, "file-name", pipeline.DefaultOrderFileName, "output file base name, without extension")
	c.Flags().StringVar(&params.GlobalMaterialColumn, "global-material-column", viper.GetString("global_material_column"), "source column holding the global material number (default ZZMDGM)")

	return c
}
