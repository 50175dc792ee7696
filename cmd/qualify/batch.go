package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/qualifier/internal/leads"
	"github.com/JaimeStill/qualifier/internal/workflow"
)

const maxLineSize = 1 << 20

var batchCmd = &cobra.Command{
	Use:   "batch <file.jsonl>",
	Short: "Qualify leads from a JSON Lines file",
	Long: `Reads one {"name","email","message"} object per line and qualifies each
lead. Results are printed as JSON Lines in input order. Use "-" to read
from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchCmd,
}

func init() {
	batchCmd.Flags().IntP("concurrency", "c", 4, "Maximum runs in flight")
}

type qualifier interface {
	Qualify(ctx context.Context, cmd leads.QualifyCommand) *workflow.Result
}

// BatchLine is one output record. Exactly one of Result and Error is set.
type BatchLine struct {
	Line   int              `json:"line"`
	Result *workflow.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return runBatch(cmd.Context(), in, cmd.OutOrStdout(), s.leads, concurrency)
}

// runBatch qualifies every non-blank line of r with at most concurrency runs
// in flight. A line that does not decode is reported in its output record
// and does not stop the batch.
func runBatch(ctx context.Context, r io.Reader, w io.Writer, q qualifier, concurrency int) error {
	var lines []BatchLine
	var cmds []*leads.QualifyCommand

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		line := BatchLine{Line: n}
		var cmd leads.QualifyCommand
		if err := json.Unmarshal([]byte(text), &cmd); err != nil {
			line.Error = fmt.Sprintf("decode line %d: %v", n, err)
			lines = append(lines, line)
			cmds = append(cmds, nil)
			continue
		}
		lines = append(lines, line)
		cmds = append(cmds, &cmd)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, cmd := range cmds {
		if cmd == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines[i].Result = q.Qualify(gctx, *cmd)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	for _, line := range lines {
		if err := writeJSON(w, line, false); err != nil {
			return err
		}
	}
	return nil
}
