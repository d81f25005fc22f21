package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resumerank"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "resumerank ranks resumes against a job description with an LLM",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
