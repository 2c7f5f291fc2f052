package cli

import (
	"log"

	"github.com/spf13/cobra"

	"ytshorts/internal/config"
	"ytshorts/internal/web"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the web front end",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			app := web.NewServer(cfg)
			log.Printf("listening on :%s", cfg.Port)
			return app.Listen(":" + cfg.Port)
		},
	}
	cmd.Flags().String("config", "ytshorts.toml", "Path to TOML config file")
	return cmd
}
