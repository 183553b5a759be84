// Command rezidemo is the engine's demo CLI: run drives the bundled demo
// view against a real TTY, record additionally captures the ZREV event
// stream to a file, and replay drives the same view against a captured
// stream instead of a live terminal, per spec.md §6's record/replay
// contract ("a byte log of ZREV batches together with the initial
// viewport and capability set").
//
// Grounded on vito-dang/cmd/dang/main.go's cobra root command plus
// charmbracelet/fang.Execute wrapping, generalized from a single-file
// interpreter CLI into three subcommands.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rezi-tui/rezi/internal/backend"
	"github.com/rezi-tui/rezi/internal/config"
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/logging"
	"github.com/rezi-tui/rezi/internal/orchestrator"
	"github.com/rezi-tui/rezi/internal/zrev"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "rezidemo",
		Short: "Rezi terminal UI engine demo",
		Long:  "rezidemo drives the engine's bundled demo view against a live terminal, optionally recording or replaying the ZREV event stream.",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional TOML engine config")

	root.AddCommand(runCmd(&configPath), recordCmd(&configPath), replayCmd(&configPath))

	ctx := context.Background()
	if err := fang.Execute(ctx, root,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the demo view against the real terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), *configPath, nil)
		},
	}
}

func recordCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Run the demo view, recording the ZREV event stream to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("record: --out is required")
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("record: create %s: %w", out, err)
			}
			defer f.Close()
			return runDemo(cmd.Context(), *configPath, f)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "path to write the recorded event log")
	return cmd
}

func replayCmd(configPath *string) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Drive the demo view from a previously recorded event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("replay: --in is required")
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("replay: read %s: %w", in, err)
			}
			return replayDemo(*configPath, data)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "path to a recorded event log")
	return cmd
}

// runDemo opens the real TTY, wires the orchestrator to it, and pumps
// events until the backend's Run returns (the q binding cancels its
// context; a stdin read error such as EOF also ends it). When rec is
// non-nil, every decoded ZREV batch is appended to it length-prefixed,
// forming the byte log spec.md §6 describes.
func runDemo(ctx context.Context, configPath string, rec io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, logging.IsTTY(os.Stderr))
	defer log.Sync()

	tty, err := backend.Open()
	if err != nil {
		return fmt.Errorf("run: open tty: %w", err)
	}
	defer tty.Close()

	caps := tty.Capabilities()
	orc := orchestrator.New(demoView, tty, caps.Cols, caps.Rows, orchestrator.Config{
		MaxFPS: int(cfg.TargetFPS),
	})
	orc.OnWarn(func(msg string) { log.Slog.Warn(msg) })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	orc.Router().PushMode(&zrev.Mode{Name: "demo", Bindings: map[string]func() bool{
		"q": func() bool { cancel(); return true },
	}})

	tty.OnResize(orc.Resize)
	tty.OnEventBatch(func(b zrev.Batch) {
		if rec != nil {
			writeRecordedBatch(rec, b)
		}
		orc.DispatchEvents(b)
	})

	orc.RequestFrame()
	defer orc.Stop()
	return tty.Run(ctx)
}

// replayDemo drives the orchestrator from a recorded log instead of a
// live terminal: there is no real backend to ack frames, so a no-op sink
// stands in and AckFrame is called synchronously after each submit.
func replayDemo(configPath string, data []byte) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, logging.IsTTY(os.Stderr))
	defer log.Sync()

	sink := &ackingSink{}
	orc := orchestrator.New(demoView, sink, 80, 24, orchestrator.Config{MaxFPS: int(cfg.TargetFPS)})
	orc.OnWarn(func(msg string) { log.Slog.Warn(msg) })
	sink.orc = orc
	orc.RequestFrame()

	for len(data) > 4 {
		n := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < n {
			break
		}
		frame := data[:n]
		data = data[n:]

		batch, err := zrev.Decode(frame)
		if err != nil {
			return fmt.Errorf("replay: decode batch: %w", err)
		}
		orc.DispatchEvents(batch)
	}
	return nil
}

func writeRecordedBatch(w io.Writer, b zrev.Batch) {
	encoded, err := zrev.Encode(b)
	if err != nil {
		return
	}
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(encoded)))
	w.Write(length[:])
	w.Write(encoded)
}

// ackingSink stands in for a live Backend during replay: it counts the
// submitted frames only, acking every frame immediately since there
// is no real ack channel to wait on.
type ackingSink struct {
	orc    *orchestrator.Orchestrator
	frames int
}

func (s *ackingSink) SubmitFrame(seq uint64, bytes []byte) error {
	s.frames++
	if s.orc != nil {
		s.orc.AckFrame(seq)
	}
	return nil
}

func (s *ackingSink) Capabilities() geom.Capabilities {
	return geom.Capabilities{Cols: 80, Rows: 24, ColorDepth: geom.TierA256}
}
