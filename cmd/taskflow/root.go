package main

import (
	"os"

	"github.com/St1cky1/taskflow/internal/config"
	"github.com/St1cky1/taskflow/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string

	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "taskflow",
	Short:         "TaskFlow task manager",
	Long:          "TaskFlow keeps a list of tasks in the session or on a REST backend (set --backend or TASKFLOW_BACKEND_URL).",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	flags.String("backend", "", "backend base URL (empty = local mode)")
	flags.String("amqp", "", "RabbitMQ URL for task events (empty = disabled)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")

	_ = v.BindPFlag("backend_url", flags.Lookup("backend"))
	_ = v.BindPFlag("amqp_url", flags.Lookup("amqp"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_format", flags.Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(eventsCmd)
}
