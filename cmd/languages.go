package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// languagesCmd lists the language registry.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the registered languages",
	Long:  `Lists the language registry. Languages from TAXONOMY_LANGUAGES are registered on every run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		langs, err := rt.registry.Languages(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(langs))
		for _, l := range langs {
			rows = append(rows, []string{l.Langcode, l.Name, strconv.Itoa(l.Weight), strconv.FormatBool(l.IsDefault)})
		}
		return renderTable(os.Stdout, []string{"Langcode", "Name", "Weight", "Default"}, rows)
	},
}

func init() {
	RootCmd.AddCommand(languagesCmd)
}
