// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/audfile"
	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
)

type cli struct {
	verbose bool
	from    string
	to      string
	buffer  int

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "audconv",
		Short:         "Audio container conversion tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if c.verbose {
				c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log progress to stderr")

	typesCmd := &cobra.Command{
		Use:   "types [file]",
		Short: "List writable container types",
		Long: `List the container types audconv can write.

With a file argument only the types that can hold that file's samples are
listed.

Examples:
  audconv types
  audconv types input.mp3`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runTypes,
	}
	typesCmd.Flags().StringVar(&c.from, "from", "", "input extension when reading stdin")

	infoCmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print sample format and length",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runInfo,
	}
	infoCmd.Flags().StringVar(&c.from, "from", "", "input extension when reading stdin")

	convertCmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Rewrite a file as another container type",
		Long: `Decode input and write its samples, unchanged, as a WAVE, AIFF or AU file.

The output type comes from --to or from the output file extension. Use "-"
for stdin or stdout; reading stdin needs --from and writing stdout needs --to.

Examples:
  audconv convert song.mp3 song.wav
  audconv convert --to au song.ogg -
  cat tone.wav | audconv convert --from wav - tone.aiff`,
		Args: cobra.ExactArgs(2),
		RunE: c.runConvert,
	}
	convertCmd.Flags().StringVar(&c.from, "from", "", "input extension when reading stdin")
	convertCmd.Flags().StringVar(&c.to, "to", "", "output type extension (wav, aif, au)")
	convertCmd.Flags().IntVar(&c.buffer, "buffer-frames", 0, "frames copied per write")

	root.AddCommand(typesCmd, infoCmd, convertCmd)
	return root
}

func (c *cli) registry() *audio.Registry {
	return audfile.NewRegistry(c.writerOptions()...)
}

func (c *cli) writerOptions() []filewriter.Option {
	opts := []filewriter.Option{filewriter.WithLogger(c.logger)}
	if c.buffer > 0 {
		opts = append(opts, filewriter.WithBufferFrames(c.buffer))
	}
	return opts
}

func (c *cli) runTypes(cmd *cobra.Command, args []string) error {
	reg := c.registry()

	types := reg.FileTypes()
	if len(args) == 1 {
		src, closer, err := c.open(cmd, reg, args[0])
		if err != nil {
			return err
		}
		defer closer.Close()
		types = reg.FileTypesFor(src)
	}

	out := cmd.OutOrStdout()
	for _, t := range types {
		fmt.Fprintf(out, "%s\t.%s\n", t.Name, t.Extension)
	}
	return nil
}

func (c *cli) runInfo(cmd *cobra.Command, args []string) error {
	reg := c.registry()

	src, closer, err := c.open(cmd, reg, args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Format: %s\n", src.Format())
	fmt.Fprintf(out, "Length: %s\n", src.FrameLength())
	return nil
}

func (c *cli) runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	reg := c.registry()

	ext := c.to
	if ext == "" {
		if out == "-" {
			return errors.New("--to is required when writing to stdout")
		}
		ext = filepath.Ext(out)
	}
	t, ok := reg.FileTypeByExtension(ext)
	if !ok {
		return fmt.Errorf("%w: extension %q", audio.ErrUnsupportedFileType, ext)
	}

	src, closer, err := c.open(cmd, reg, in)
	if err != nil {
		return err
	}
	defer closer.Close()

	c.logger.Debug("converting", "input", in, "output", out, "type", t, "format", src.Format(),
		"length", src.FrameLength())

	var n int64
	if out == "-" {
		n, err = reg.Write(src, t, audio.Stream(cmd.OutOrStdout()))
	} else {
		n, err = audfile.NewWriter(c.writerOptions()...).WriteFile(src, t, out)
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}

	c.logger.Info("converted", "output", out, "type", t, "bytes", n)
	return nil
}

// open decodes path with the decoder registered for its extension, or for
// --from when path is "-".
func (c *cli) open(cmd *cobra.Command, reg *audio.Registry, path string) (audio.FrameSource, io.Closer, error) {
	ext := c.from
	if ext == "" {
		if path == "-" {
			return nil, nil, errors.New("--from is required when reading stdin")
		}
		ext = filepath.Ext(path)
	}

	dec, ok := reg.Decoder(ext)
	if !ok {
		return nil, nil, fmt.Errorf("no decoder for extension %q", ext)
	}

	var r io.ReadCloser = io.NopCloser(cmd.InOrStdin())
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		r = f
	}

	src, err := dec.Decode(r)
	if err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return src, r, nil
}
