package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	exportcmd "github.com/cody-foxy/scanwatch/cmd/export"
	findingscmd "github.com/cody-foxy/scanwatch/cmd/findings"
	historycmd "github.com/cody-foxy/scanwatch/cmd/history"
	"github.com/cody-foxy/scanwatch/cmd/submit"
	"github.com/cody-foxy/scanwatch/cmd/version"
	"github.com/cody-foxy/scanwatch/cmd/watch"
	"github.com/cody-foxy/scanwatch/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "scanwatch [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Scanwatch submits code to the Cody Foxy analysis service and tracks scans to completion.",
		Long: `Scanwatch is a client for the Cody Foxy security-scanning service. It submits
	source code by archive upload or repository reference, polls the resulting scan
	until it reaches a terminal state, renders the findings with line-accurate code
	annotations, and exports the canonical SARIF report.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(submit.SubmitCmd)
	rootCmd.AddCommand(watch.WatchCmd)
	rootCmd.AddCommand(findingscmd.FindingsCmd)
	rootCmd.AddCommand(exportcmd.ExportCmd)
	rootCmd.AddCommand(historycmd.HistoryCmd)
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("initializing config file failed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	submit.Init(AppConfig)
	watch.Init(AppConfig)
	findingscmd.Init(AppConfig)
	exportcmd.Init(AppConfig)
	historycmd.Init(AppConfig)
}
