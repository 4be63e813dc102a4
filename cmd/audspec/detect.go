// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ik5/audspec/detector"
	"github.com/ik5/audspec/inference"
	"github.com/ik5/audspec/spectrumio"
)

func newDetectCmd(a *app) *cobra.Command {
	var onlyDetections bool

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Score an audio file block by block",
		Long: `Decode the file, resample it to mono at the configured rate and feed it
through the spectrogram and the energy scorer. One line is printed per
capture block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			handler := func(r detector.Result) {
				if onlyDetections && !r.Detected {
					return
				}
				printResult(out, r)
			}
			return a.runDetector(cmd.Context(), args[0], detector.WithHandler(handler))
		},
	}

	cmd.Flags().BoolVar(&onlyDetections, "only-detections", false, "print detected blocks only")
	return cmd
}

func newDumpCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Write every spectrogram snapshot as framed records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create dump: %w", err)
				}
				defer f.Close()
				w = f
			}

			sink := spectrumio.NewWriter(w)
			if err := a.runDetector(cmd.Context(), args[0], detector.WithSink(sink)); err != nil {
				return err
			}

			a.log.WithField("records", sink.Records()).Info("dump written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output path, - for stdout")
	return cmd
}

func (a *app) runDetector(ctx context.Context, path string, opts ...detector.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	src, err := a.openMono(path)
	if err != nil {
		return err
	}
	defer src.Close()

	model, err := inference.NewEnergyModel(a.cfg.Energy())
	if err != nil {
		return err
	}

	d, err := detector.New(detector.Config{
		Stream:     a.cfg.StreamConfig,
		Threshold:  a.cfg.Threshold,
		Multiplier: a.cfg.DividerMultiplier,
	}, src, model, append([]detector.Option{detector.WithLogger(a.log)}, opts...)...)
	if err != nil {
		return err
	}

	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.log.Warn("interrupted")
		return nil
	}
	return err
}

func printResult(w io.Writer, r detector.Result) {
	state := "quiet"
	if r.Detected {
		state = "DETECTED"
	}
	fmt.Fprintf(w, "%6d  %-8s  score=%.4f", r.Cycle, state, r.Score)
	if r.Saturated > 0 {
		fmt.Fprintf(w, "  saturated=%d", r.Saturated)
	}
	fmt.Fprintln(w)
}
