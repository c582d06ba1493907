package main

import (
	"fmt"
	"os"

	"github.com/martinemde/megabuilder/builderapi"
	"github.com/martinemde/megabuilder/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var apiCmd = &cobra.Command{
	Use:   "api [grammar-file]",
	Short: "Generate Go builder interfaces for a grammar",
	Long: "Build the DFA for a grammar and emit one Go interface per state: each " +
		"transition becomes a method returning the next state's interface, and " +
		"final states declare Build.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringP("expr", "e", "", "Inline grammar expression, e.g. \"a (b | c)*\"")
	apiCmd.Flags().StringP("output", "o", "", "Write the generated source to this file instead of stdout")
	apiCmd.Flags().String("package", builderapi.DefaultPackage, "Package name of the generated file")
	apiCmd.Flags().String("result", builderapi.DefaultResult, "Type returned by Build, e.g. model.Catalogue")
	apiCmd.Flags().StringSlice("import", nil, "Import path to add to the generated file (repeatable)")
	apiCmd.Flags().StringToString("param", nil, "Method parameters per symbol, e.g. --param article=\"name string\"")

	_ = viper.BindPFlag("api.package", apiCmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("api.result", apiCmd.Flags().Lookup("result"))

	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	exprSrc, _ := cmd.Flags().GetString("expr")
	output, _ := cmd.Flags().GetString("output")
	imports, _ := cmd.Flags().GetStringSlice("import")
	params, _ := cmd.Flags().GetStringToString("param")

	expr, err := loadGrammar(args, exprSrc)
	if err != nil {
		return err
	}

	emitter := pipeline.NewEventEmitter()
	emitter.On(terminalEventListener(cmd.ErrOrStderr(), viper.GetBool("verbose")))

	result, err := pipeline.Run(expr, &pipeline.RunConfig{
		API: &builderapi.Options{
			Package: viper.GetString("api.package"),
			Result:  viper.GetString("api.result"),
			Imports: imports,
			Params:  params,
		},
		EventEmitter: emitter,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[api] Failed: %v\n", err)
		return err
	}

	src, err := result.Artifacts.Retrieve(pipeline.ArtifactAPI)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}
	if err := os.WriteFile(output, src, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[write] %s\n", output)
	return nil
}
