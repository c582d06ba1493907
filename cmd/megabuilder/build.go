package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/martinemde/megabuilder/dot"
	"github.com/martinemde/megabuilder/grammar"
	"github.com/martinemde/megabuilder/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build [grammar-file]",
	Short: "Build the NFA and DFA for a grammar",
	Long: "Parse a grammar (from a file, --expr, or the built-in catalogue grammar), " +
		"build its NFA and DFA, and write both as DOT files.",
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("expr", "e", "", "Inline grammar expression, e.g. \"a (b | c)*\"")
	buildCmd.Flags().String("out-dir", ".", "Directory for the DOT files")
	buildCmd.Flags().String("nfa-file", pipeline.DefaultNFAFile, "File name for the NFA graph")
	buildCmd.Flags().String("dfa-file", pipeline.DefaultDFAFile, "File name for the DFA graph")
	buildCmd.Flags().Bool("dry-run", false, "Build and validate only, do not write files")
	buildCmd.Flags().String("print", "", "Also print one graph to stdout (nfa or dfa)")
	buildCmd.Flags().Bool("manifest", false, "Also write manifest.json summarizing the run")

	_ = viper.BindPFlag("out_dir", buildCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("nfa_file", buildCmd.Flags().Lookup("nfa-file"))
	_ = viper.BindPFlag("dfa_file", buildCmd.Flags().Lookup("dfa-file"))
	_ = viper.BindPFlag("manifest", buildCmd.Flags().Lookup("manifest"))

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	exprSrc, _ := cmd.Flags().GetString("expr")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printGraph, _ := cmd.Flags().GetString("print")

	if printGraph != "" && printGraph != pipeline.ArtifactNFA && printGraph != pipeline.ArtifactDFA {
		return fmt.Errorf("--print must be %q or %q, got %q", pipeline.ArtifactNFA, pipeline.ArtifactDFA, printGraph)
	}

	expr, err := loadGrammar(args, exprSrc)
	if err != nil {
		return err
	}

	emitter := pipeline.NewEventEmitter()
	emitter.On(terminalEventListener(cmd.ErrOrStderr(), verbose))

	config := &pipeline.RunConfig{
		NFAFile:      viper.GetString("nfa_file"),
		DFAFile:      viper.GetString("dfa_file"),
		Manifest:     viper.GetBool("manifest"),
		EventEmitter: emitter,
	}
	if !dryRun {
		config.OutDir = viper.GetString("out_dir")
	}

	result, err := pipeline.Run(expr, config)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[build] Failed: %v\n", err)
		return err
	}

	if dryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Dry run: grammar built successfully\n")
		printBuildSummary(cmd.ErrOrStderr(), result)
	}

	if printGraph != "" {
		data, err := result.Artifacts.Retrieve(printGraph)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}
	return nil
}

// loadGrammar resolves the grammar from --expr, a file argument, or the
// built-in catalogue grammar, in that order.
func loadGrammar(args []string, exprSrc string) (grammar.Expr, error) {
	if exprSrc != "" && len(args) > 0 {
		return nil, errors.New("pass either a grammar file or --expr, not both")
	}
	if exprSrc != "" {
		expr, err := grammar.Parse([]byte(exprSrc))
		if err != nil {
			return nil, fmt.Errorf("parsing --expr: %w", err)
		}
		return expr, nil
	}
	if len(args) == 0 {
		return catalogueGrammar(), nil
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading grammar file: %w", err)
	}
	expr, err := grammar.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing grammar: %w", err)
	}
	return expr, nil
}

// terminalEventListener returns an event listener that prints build progress.
func terminalEventListener(w io.Writer, verbose bool) func(pipeline.Event) {
	return func(e pipeline.Event) {
		switch e.Type {
		case pipeline.EventBuildStarted:
			if verbose {
				grammarText, _ := e.Data["grammar"].(string)
				fmt.Fprintf(w, "[build] Run %s: %s\n", e.RunID, grammarText)
			}

		case pipeline.EventStageCompleted:
			if verbose {
				stage, _ := e.Data["stage"].(string)
				if states, ok := e.Data["states"].(int); ok {
					fmt.Fprintf(w, "[stage] %s done (%d states)\n", stage, states)
				} else {
					fmt.Fprintf(w, "[stage] %s done\n", stage)
				}
			}

		case pipeline.EventStageFailed:
			stage, _ := e.Data["stage"].(string)
			errMsg, _ := e.Data["error"].(string)
			fmt.Fprintf(w, "[stage] %s failed (%s)\n", stage, errMsg)

		case pipeline.EventArtifactWritten:
			path, _ := e.Data["path"].(string)
			fmt.Fprintf(w, "[write] %s\n", path)

		case pipeline.EventBuildCompleted:
			if verbose {
				nfaStates, _ := e.Data["nfa_states"].(int)
				dfaStates, _ := e.Data["dfa_states"].(int)
				fmt.Fprintf(w, "[build] Completed: %d NFA states, %d DFA states\n", nfaStates, dfaStates)
			}
		}
	}
}

// printBuildSummary prints a summary of both automata, reading the per-state
// details from the rendered DFA graph.
func printBuildSummary(w io.Writer, result *pipeline.RunResult) {
	g := result.DFAGraph
	fmt.Fprintf(w, "  NFA: %d states, %d edges\n", result.NFA.Len(), len(result.NFAGraph.Edges))
	fmt.Fprintf(w, "  DFA: %d states, %d final, %d transitions\n",
		len(result.DFA.States), len(result.DFA.Finals()), len(g.Edges))
	fmt.Fprintf(w, "  States:\n")
	for _, s := range result.DFA.States {
		id := dot.DFANodeID(s)
		marker := ""
		if n := g.NodeByID(id); n != nil {
			if shape, _ := n.Attr("shape"); shape == dot.FinalShape {
				marker = " (final)"
			}
		}
		fmt.Fprintf(w, "    - %s: %d in, %d out%s\n", id, len(g.EdgesTo(id)), len(g.EdgesFrom(id)), marker)
	}
}
