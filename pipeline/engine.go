package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/martinemde/megabuilder/automaton"
	"github.com/martinemde/megabuilder/builderapi"
	"github.com/martinemde/megabuilder/dot"
	"github.com/martinemde/megabuilder/grammar"
)

// Artifact IDs and their default file names.
const (
	ArtifactNFA      = "nfa"
	ArtifactDFA      = "dfa"
	ArtifactManifest = "manifest"
	ArtifactAPI      = "api"

	DefaultNFAFile = "out.dot"
	DefaultDFAFile = "dfa.dot"
	DefaultAPIFile = "builder.go"
	ManifestFile   = "manifest.json"
)

// Stage names a step of a build run.
type Stage string

const (
	StageBuild       Stage = "build_nfa"
	StageDeterminize Stage = "determinize"
	StageValidate    Stage = "validate"
	StageExport      Stage = "export"
	StageWrite       Stage = "write"
)

// RunConfig configures a build run.
type RunConfig struct {
	// OutDir is the directory the DOT files are written to. If empty,
	// artifacts are rendered but nothing is written.
	OutDir string

	// NFAFile and DFAFile name the output files. Defaults: out.dot, dfa.dot.
	NFAFile string
	DFAFile string

	// Manifest adds a manifest.json artifact summarizing the run.
	Manifest bool

	// API, when set, adds the generated builder interfaces as an artifact
	// written to APIFile (default builder.go).
	API     *builderapi.Options
	APIFile string

	// EventEmitter receives progress events. May be nil.
	EventEmitter *EventEmitter
}

// Manifest summarizes a run.
type Manifest struct {
	ID          string   `json:"id"`
	Grammar     string   `json:"grammar"`
	StartTime   string   `json:"start_time"`
	Symbols     []string `json:"symbols"`
	NFAStates   int      `json:"nfa_states"`
	DFAStates   int      `json:"dfa_states"`
	FinalStates []string `json:"final_states"`
}

// RunResult contains the results of a build run.
type RunResult struct {
	// ID identifies the run in emitted events.
	ID string

	NFA *automaton.NFA
	DFA *automaton.DFA

	NFAGraph *dot.Graph
	DFAGraph *dot.Graph

	// Artifacts holds the rendered DOT text under ArtifactNFA and ArtifactDFA,
	// plus ArtifactManifest and ArtifactAPI when requested.
	Artifacts *ArtifactStore

	// Written lists the files written to OutDir, empty when OutDir is empty.
	Written []ArtifactInfo

	Duration time.Duration
}

// StageError reports which stage of a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Run builds the NFA for expr, determinizes it, validates both automata,
// renders them as DOT and, when config.OutDir is set, writes every artifact.
// Any failure aborts the run before a file is written.
func Run(expr grammar.Expr, config *RunConfig) (*RunResult, error) {
	if config == nil {
		config = &RunConfig{}
	}
	nfaFile := config.NFAFile
	if nfaFile == "" {
		nfaFile = DefaultNFAFile
	}
	dfaFile := config.DFAFile
	if dfaFile == "" {
		dfaFile = DefaultDFAFile
	}
	apiFile := config.APIFile
	if apiFile == "" {
		apiFile = DefaultAPIFile
	}

	r := &run{
		id:      uuid.New().String(),
		emitter: config.EventEmitter,
		start:   time.Now(),
	}
	result := &RunResult{ID: r.id, Artifacts: NewArtifactStore()}

	described := "<nil>"
	if expr != nil {
		described = expr.String()
	}
	r.emitter.Emit(BuildStartedEvent(r.id, described))

	err := r.stage(StageBuild, func() (map[string]any, error) {
		nfa, err := automaton.Build(expr)
		if err != nil {
			return nil, err
		}
		result.NFA = nfa
		return map[string]any{"states": nfa.Len()}, nil
	})
	if err != nil {
		return nil, r.fail(err)
	}

	err = r.stage(StageDeterminize, func() (map[string]any, error) {
		result.DFA = automaton.Determinize(result.NFA)
		return map[string]any{
			"states": len(result.DFA.States),
			"finals": len(result.DFA.Finals()),
		}, nil
	})
	if err != nil {
		return nil, r.fail(err)
	}

	err = r.stage(StageValidate, func() (map[string]any, error) {
		return nil, automaton.ValidateOrError(result.NFA, result.DFA)
	})
	if err != nil {
		return nil, r.fail(err)
	}

	err = r.stage(StageExport, func() (map[string]any, error) {
		result.NFAGraph = dot.FromNFA(result.NFA)
		result.DFAGraph = dot.FromDFA(result.DFA)
		for _, a := range []struct {
			id, file string
			graph    *dot.Graph
		}{
			{ArtifactNFA, nfaFile, result.NFAGraph},
			{ArtifactDFA, dfaFile, result.DFAGraph},
		} {
			var buf bytes.Buffer
			if err := dot.Write(&buf, a.graph); err != nil {
				return nil, err
			}
			if _, err := result.Artifacts.Store(a.id, a.file, buf.Bytes()); err != nil {
				return nil, err
			}
		}
		if config.API != nil {
			src, err := builderapi.Generate(result.DFA, *config.API)
			if err != nil {
				return nil, err
			}
			if _, err := result.Artifacts.Store(ArtifactAPI, apiFile, src); err != nil {
				return nil, err
			}
		}
		if config.Manifest {
			if err := storeManifest(result, expr, r.start); err != nil {
				return nil, err
			}
		}
		return map[string]any{
			"nfa_edges": len(result.NFAGraph.Edges),
			"dfa_edges": len(result.DFAGraph.Edges),
		}, nil
	})
	if err != nil {
		return nil, r.fail(err)
	}

	if config.OutDir != "" {
		err = r.stage(StageWrite, func() (map[string]any, error) {
			written, err := result.Artifacts.Flush(config.OutDir)
			if err != nil {
				return nil, err
			}
			result.Written = written
			for _, info := range written {
				r.emitter.Emit(ArtifactWrittenEvent(r.id, info))
			}
			return map[string]any{"files": len(written)}, nil
		})
		if err != nil {
			return nil, r.fail(err)
		}
	}

	result.Duration = time.Since(r.start)
	r.emitter.Emit(BuildCompletedEvent(r.id, result.Duration, result.NFA.Len(), len(result.DFA.States)))
	return result, nil
}

// run carries per-invocation state for Run.
type run struct {
	id      string
	emitter *EventEmitter
	start   time.Time
}

func (r *run) stage(stage Stage, fn func() (map[string]any, error)) error {
	started := time.Now()
	data, err := fn()
	if err != nil {
		r.emitter.Emit(StageFailedEvent(r.id, stage, err.Error()))
		return &StageError{Stage: stage, Err: err}
	}
	r.emitter.Emit(StageCompletedEvent(r.id, stage, time.Since(started), data))
	return nil
}

func (r *run) fail(err error) error {
	r.emitter.Emit(BuildFailedEvent(r.id, err.Error(), time.Since(r.start)))
	return err
}

func storeManifest(result *RunResult, expr grammar.Expr, start time.Time) error {
	m := Manifest{
		ID:          result.ID,
		Grammar:     expr.String(),
		StartTime:   start.Format(time.RFC3339),
		Symbols:     grammar.Symbols(expr),
		NFAStates:   result.NFA.Len(),
		DFAStates:   len(result.DFA.States),
		FinalStates: []string{},
	}
	for _, s := range result.DFA.Finals() {
		m.FinalStates = append(m.FinalStates, dot.DFANodeID(s))
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	_, err = result.Artifacts.Store(ArtifactManifest, ManifestFile, data)
	return err
}
