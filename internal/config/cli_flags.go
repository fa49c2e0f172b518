package config

import "github.com/spf13/cobra"

// RegisterFlags registers CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().IntP("pages", "p", DefaultPages, "Number of listing pages to scrape")
	cmd.Flags().IntP("delay", "t", DefaultDelay, "Seconds to wait between pages")
	cmd.Flags().StringP("output", "o", DefaultDataset, "Filename of the CSV dataset")

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for page requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}
