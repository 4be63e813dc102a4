// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audspec"
	"github.com/ik5/audspec/audio"
	"github.com/ik5/audspec/config"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}

	root := &cobra.Command{
		Use:   "audspec",
		Short: "Fixed-point spectrogram front end for audio classifiers",
		Long: `audspec slices audio into overlapping windows, runs a Q15 FFT on each,
quantizes the magnitudes to int8 and keeps a rolling spectrogram that a
classifier scores every capture block.

Configuration is read from --config (or audspec.yaml in the working
directory or the user config directory), AUDSPEC_* environment variables
and flags, flags winning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./audspec.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newDetectCmd(a),
		newDumpCmd(a),
		newResampleCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(cfg.Level())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.WithField("file", used).Debug("configuration loaded")
	}
	return nil
}

// openMono decodes path and converts it to mono at the configured rate.
func (a *app) openMono(path string) (audio.Source, error) {
	src, err := audspec.Open(path)
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"file":     path,
		"rate":     src.SampleRate(),
		"channels": src.Channels(),
	}).Debug("input opened")

	return audio.NewResampler(audio.NewMonoMixer(src), a.cfg.SampleRate), nil
}
