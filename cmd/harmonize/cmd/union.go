package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUnionCommand creates the union command with app dependencies.
func NewUnionCommand(app AppContext) *cobra.Command {
	var (
		outputDir string
		fileName  string
	)

	c := &cobra.Command{
		Use:   "union <file>...",
		Short: "Concatenate several unified output files into one",
		Long: `Union concatenates several already-produced unified output files into
one CSV file. Columns are aligned by name; a column missing from one
file is null-filled for that file's rows.`,
		Example: `  harmonize union ./out/system_a.csv ./out/system_b.csv --output-dir ./out --file-name all_systems`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path, err := app.Harmonizer().UnionMany(c.Context(), args, outputDir, fileName)
			if err != nil {
				return err
			}
			app.Logger().Info().Str("path", path).Msg("union written")
			return nil
		},
	}

	c.Flags().StringVar(&outputDir, "output-dir", viper.GetString("output_dir"), "directory receiving the output file")
	c.Flags().StringVar(&fileName, "file-name", "union", "output file base name, without extension")

	return c
}
