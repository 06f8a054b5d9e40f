package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flatlog/flatlog/core"
	"github.com/flatlog/flatlog/formatter"
)

type renderOptions struct {
	YAML bool
	Out  string
}

func newRootCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "flatlog",
		Short:         "Render structured log events as classic log text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newRenderCommand())
	return cmd
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render events from JSON lines or YAML documents",
		Long: `Render structured log events as classic one-line log text.

Events are read from the given file, or stdin when no file is named, as
one JSON object per line (the default) or as a stream of YAML documents
(--yaml). Reserved keys (log_format, log_time, log_namespace, log_level,
log_system) become event metadata; every other key is a template field.

Each event is flattened on ingest and rendered as
"{time} [{system}] {message}", so a malformed event still produces a
visible, informative line instead of aborting the run.

Example:
  flatlog render events.jsonl
  cat events.yaml | flatlog render --yaml -o rendered.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if opts.Out != "" {
				f, err := os.Create(opts.Out)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return render(in, out, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "read events as a YAML document stream")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write lines to a file instead of stdout")

	return cmd
}

func render(in io.Reader, out io.Writer, opts *renderOptions) error {
	w := bufio.NewWriter(out)

	emit := func(m map[string]any) {
		ev := core.FromMap(m)
		if err := formatter.Flatten(ev); err != nil {
			slog.Debug("event did not flatten; rendering live", "error", err)
		}
		line, ok := formatter.FormatClassicLine(ev, nil)
		if !ok {
			slog.Debug("event rendered empty; skipped")
			return
		}
		w.WriteString(line)
	}

	if opts.YAML {
		dec := yaml.NewDecoder(in)
		for {
			var m map[string]any
			err := dec.Decode(&m)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("decoding YAML event: %w", err)
			}
			emit(m)
		}
		return w.Flush()
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return fmt.Errorf("line %d: decoding JSON event: %w", lineno, err)
		}
		emit(m)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return w.Flush()
}
