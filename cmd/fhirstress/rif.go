package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/torosent/fhirstress/internal/config"
	"github.com/torosent/fhirstress/internal/rif"
)

func newRIFCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rif",
		Short: "Describe a local RIF file, optionally streaming its content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader().Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.ValidateRIF(); err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.LogLevel)
			return runRIF(cfg.RIF, stdout, logger)
		},
	}
	config.RegisterRIFFlags(cmd)
	return cmd
}

func runRIF(cfg config.RIFConfig, stdout io.Writer, logger zerolog.Logger) error {
	file := rif.NewLocalFile(cfg.File, rif.FileType(cfg.Type))
	log := logger.With().Str("component", "rif").Str("file", file.DisplayName()).Logger()

	if cfg.Cat {
		rc, err := rif.NewTextReader(file)
		if err != nil {
			return err
		}
		defer rc.Close()
		n, err := io.Copy(stdout, rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", file.DisplayName(), err)
		}
		log.Debug().Int64("bytes", n).Msg("File streamed")
		return nil
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	n, err := io.Copy(io.Discard, rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", file.DisplayName(), err)
	}
	log.Debug().Int64("bytes", n).Msg("File read")

	fmt.Fprintf(stdout, "Name:      %s\n", file.DisplayName())
	fmt.Fprintf(stdout, "Type:      %s\n", file.FileType())
	fmt.Fprintf(stdout, "Encoding:  %s\n", encodingName(file.Encoding()))
	fmt.Fprintf(stdout, "Bytes:     %d\n", n)
	return nil
}

func encodingName(enc encoding.Encoding) string {
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "unknown"
	}
	return name
}
