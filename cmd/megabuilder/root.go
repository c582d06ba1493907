package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "megabuilder",
	Short: "Grammar to automaton builder",
	Long:  "Megabuilder compiles a grammar expression into an NFA, determinizes it, and writes both automata as DOT graphs.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("MEGABUILDER")
	viper.AutomaticEnv()
}
