// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audspec"
	"github.com/ik5/audspec/formats/wav"
)

func newResampleCmd(a *app) *cobra.Command {
	var rate int

	cmd := &cobra.Command{
		Use:   "resample <in> <out.wav>",
		Short: "Convert any supported file to mono 16-bit WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate <= 0 {
				rate = a.cfg.SampleRate
			}

			src, err := audspec.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			pcm, err := audspec.ResampleToMono16(src, rate, a.cfg.ReadSize)
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := wav.WriteWAV16(f, rate, pcm); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}

			a.log.WithFields(logrus.Fields{
				"out":     args[1],
				"rate":    rate,
				"samples": len(pcm),
			}).Info("wrote")
			return nil
		},
	}

	cmd.Flags().IntVar(&rate, "rate", 0, "output rate in Hz (default: sample_rate)")
	return cmd
}
