package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/streammd/internal/config"
	"github.com/samsaffron/streammd/internal/render"
	"github.com/samsaffron/streammd/internal/resolve"
	"github.com/samsaffron/streammd/internal/segment"
)

var (
	segmentChunkSize   int
	segmentWidth       int
	segmentFormat      string
	segmentProjectRoot string
	segmentReplay      bool
	segmentVerbose     bool
)

func init() {
	segmentCmd.Flags().IntVar(&segmentChunkSize, "chunk-size", 0, "Delta size in runes when chunking input (0 = config default)")
	segmentCmd.Flags().IntVar(&segmentWidth, "width", 0, "Terminal width for rendered output (0 = config default)")
	segmentCmd.Flags().StringVar(&segmentFormat, "format", "", "Output format: text, json or yaml")
	segmentCmd.Flags().StringVar(&segmentProjectRoot, "project-root", "", "Resolve code block file paths against this directory")
	segmentCmd.Flags().BoolVar(&segmentReplay, "replay", false, "Rebuild state from the delta history after every delta")
	segmentCmd.Flags().BoolVar(&segmentVerbose, "verbose", false, "Log one line per element to stderr")
	rootCmd.AddCommand(segmentCmd)
}

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Split a markdown stream into elements",
	Long: `Reads markdown from a file or stdin, feeds it to the segmenter in
delta-sized chunks as a streaming client would, and prints the resulting
elements.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applySegmentFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		input, err := readInput(args)
		if err != nil {
			return err
		}

		acc := runSegmenter(input, cfg)
		if segmentVerbose {
			for _, el := range acc.Elements() {
				fmt.Fprintf(os.Stderr, "streammd: %s\n", render.Summary(el))
			}
		}
		return writeElements(cmd.OutOrStdout(), acc.Elements(), cfg)
	},
}

// applySegmentFlags lets explicit flags win over file and env settings.
func applySegmentFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = segmentChunkSize
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = segmentWidth
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = segmentFormat
	}
	if cmd.Flags().Changed("project-root") {
		cfg.ProjectRoot = segmentProjectRoot
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// runSegmenter feeds the input delta by delta. With --replay every delta is
// followed by rebuilding a fresh accumulator from the full history, which
// exercises the same path a reconnecting client takes.
func runSegmenter(input string, cfg *config.Config) *segment.Accumulator {
	opts := []segment.Option{}
	if len(cfg.Mermaid.ExtraKeywords) > 0 {
		opts = append(opts, segment.WithMermaidKeywords(cfg.Mermaid.ExtraKeywords...))
	}

	deltas := chunkString(input, cfg.ChunkSize)
	acc := segment.New(opts...)
	for i := range deltas {
		if segmentReplay {
			acc = segment.New(opts...)
			acc.CatchUp(deltas[:i+1])
		} else {
			acc.Ingest(deltas[i])
		}
	}
	acc.Finish()
	return acc
}

// chunkString splits s into chunks of at most size runes, never cutting a
// rune in half. A size of zero or less yields the whole string as one delta.
func chunkString(s string, size int) []string {
	if s == "" {
		return nil
	}
	if size <= 0 {
		return []string{s}
	}
	var out []string
	start := 0
	count := 0
	for i := range s {
		if count == size {
			out = append(out, s[start:i])
			start = i
			count = 0
		}
		count++
	}
	out = append(out, s[start:])
	return out
}

// elementView is the serialized shape of an element for json/yaml output.
type elementView struct {
	ID         int        `json:"id" yaml:"id"`
	Kind       string     `json:"kind" yaml:"kind"`
	Complete   bool       `json:"complete" yaml:"complete"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	Language   string     `json:"language,omitempty" yaml:"language,omitempty"`
	FilePath   string     `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Headers    []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Alignments []string   `json:"alignments,omitempty" yaml:"alignments,omitempty"`
	Rows       [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

func elementViews(els []segment.Element, projectRoot string) []elementView {
	views := make([]elementView, len(els))
	for i, el := range els {
		v := elementView{
			ID:       el.ID,
			Kind:     el.Kind.String(),
			Complete: el.Complete,
			Content:  el.Content,
			Language: el.Language,
			FilePath: resolve.Path(el.FilePath, projectRoot),
			Headers:  el.Headers,
			Rows:     el.Rows,
		}
		for _, a := range el.Alignments {
			v.Alignments = append(v.Alignments, a.String())
		}
		views[i] = v
	}
	return views
}

func writeElements(w io.Writer, els []segment.Element, cfg *config.Config) error {
	switch cfg.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(elementViews(els, cfg.ProjectRoot))
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(elementViews(els, cfg.ProjectRoot))
	default:
		r := render.New(cfg.Width, cfg.Highlight.Style)
		_, err := fmt.Fprintln(w, r.Document(els))
		return err
	}
}
