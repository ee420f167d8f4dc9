package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "streammd",
	Short: "Segment streamed markdown into structured elements",
	Long: `streammd consumes text the way LLM clients receive it, as a stream of
deltas, and incrementally splits it into ordered elements: text runs,
fenced code blocks (with mermaid auto-detection) and pipe tables.

Examples:
  streammd segment reply.md             # segment a file
  cat reply.md | streammd segment       # segment stdin
  streammd segment reply.md --format json
  streammd segment reply.md --chunk-size 16 --replay`,
	Version:           Version,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
