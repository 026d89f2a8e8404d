package cmd

import (
	"fmt"
	"os"
	"strconv"

	"geotree/core/locale"
	"geotree/feature/country"

	"github.com/spf13/cobra"
)

var listLang string

// countriesCmd is the parent command for reading stored countries.
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Read stored countries",
}

// countriesListCmd prints every country of the vocabulary.
var countriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List countries named in one language",
	Long: `List every country of the vocabulary. Names are shown in --lang, which
defaults to the language of the system locale. Terms without that translation
fall back to their default language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		lang := listLang
		if lang == "" {
			lang = locale.DetectLangcode(rt.cfg.Taxonomy.DefaultLangcode)
		}

		svc := country.NewService(nil, rt.store, rt.cfg.Taxonomy.Vocabulary, rt.logger)
		countries, err := svc.List(cmd.Context(), lang)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(countries))
		for _, c := range countries {
			rows = append(rows, []string{strconv.FormatUint(uint64(c.ID), 10), c.ISO2, c.Name, c.Langcode, c.Continent, c.Subregion})
		}
		return renderTable(os.Stdout, []string{"ID", "ISO2", "Name", "Lang", "Continent", "Subregion"}, rows)
	},
}

// countriesShowCmd prints one country with every translation.
var countriesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one country with all translations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 0)
		if err != nil {
			return fmt.Errorf("invalid country id %q", args[0])
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc := country.NewService(nil, rt.store, rt.cfg.Taxonomy.Vocabulary, rt.logger)
		detail, err := svc.Get(cmd.Context(), uint(id))
		if err != nil {
			return err
		}

		fmt.Printf("ID: %d\nUUID: %s\nVocabulary: %s\n\n", detail.ID, detail.UUID, detail.Vocabulary)
		rows := make([][]string, 0, len(detail.Translations))
		for _, tr := range detail.Translations {
			rows = append(rows, []string{tr.Langcode, tr.Name, strconv.FormatBool(tr.Published), tr.Changed.Format("2006-01-02 15:04:05")})
		}
		return renderTable(os.Stdout, []string{"Lang", "Name", "Published", "Changed"}, rows)
	},
}

func init() {
	countriesCmd.AddCommand(countriesListCmd, countriesShowCmd)
	countriesListCmd.Flags().StringVar(&listLang, "lang", "", "Language of the names (defaults to the system locale)")

	RootCmd.AddCommand(countriesCmd)
}
