/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blacktop/go-termpic"
	"github.com/blacktop/go-termpic/internal/config"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 255 // -1
	ExitDecode  = 254 // -2
)

var errUsage = errors.New("expected exactly one image file")

// queryGeometry is replaced in tests
var queryGeometry = termpic.QueryTerminalGeometry

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type flags struct {
	width     int
	height    int
	noAlpha   bool
	fullAlpha bool
	white     bool
	gray      bool
	bg        string
	renderer  string
	config    string
	verbose   bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "termpic [flags] FILE",
		Short: "Displays an image rendered full-color in modern terminals.",
		Long: `Displays an image rendered full-color in modern terminals.
Most common image formats are supported (PNG, JPEG, GIF, BMP, TIFF, WebP).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				log.SetLevel(log.DebugLevel)
			}
			return run(cmd, args[0], f, stdout)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	fs := cmd.Flags()
	fs.IntVar(&f.width, "width", 0, "Desired width in characters")
	fs.IntVar(&f.height, "height", 0, "Desired height in characters")
	fs.BoolVar(&f.noAlpha, "no-alpha", false, "Ignore transparency in image")
	fs.BoolVar(&f.fullAlpha, "full-alpha", false, "Use full alpha range from source image (may increase fringing)")
	fs.BoolVar(&f.white, "white", false, "Assume a white terminal background instead of black")
	fs.BoolVar(&f.gray, "gray", false, "Assume a dark gray terminal background instead of black")
	fs.StringVar(&f.bg, "bg", "", "Assume this terminal background color (name or #rrggbb)")
	fs.StringVar(&f.renderer, "renderer", "", "Renderer to use (halfblocks, mosaic); mosaic ignores --no-alpha and --full-alpha")
	fs.StringVar(&f.config, "config", "", "Path to a TOML config file")
	fs.BoolVarP(&f.verbose, "verbose", "V", false, "Enable verbose logging")

	return cmd
}

func run(cmd *cobra.Command, path string, f flags, stdout io.Writer) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cmd, f, cfg)
	if err != nil {
		return err
	}

	src, err := termpic.Load(path)
	if err != nil {
		return &exitError{code: ExitDecode, err: fmt.Errorf("could not load '%s': %w", path, err)}
	}
	log.Debugf("Loaded %s: %s %s, %d channels (%s)",
		path, src.Size(), src.Format, src.Channels, humanize.Bytes(uint64(len(src.Pixels.Pix))))

	geometry, ok := queryGeometry()
	if !ok {
		log.Debugf("Could not query terminal size, assuming %s", geometry)
	}
	log.Debugf("Terminal: %s", geometry)
	log.Debugf("Target: %s (requested %s x %s)", termpic.Resolve(src.Size(), opts.Size, geometry), opts.Size.Width, opts.Size.Height)

	out := bufio.NewWriter(stdout)
	if err := termpic.Display(out, src, geometry, opts); err != nil {
		return fmt.Errorf("failed to display image: %w", err)
	}
	return out.Flush()
}

// buildOptions merges the config file with the command line, flags winning
func buildOptions(cmd *cobra.Command, f flags, cfg *config.Config) (termpic.Options, error) {
	fs := cmd.Flags()
	opts := termpic.Options{
		NoAlpha:   cfg.NoAlpha,
		FullAlpha: cfg.FullAlpha,
	}
	if fs.Changed("no-alpha") {
		opts.NoAlpha = f.noAlpha
	}
	if fs.Changed("full-alpha") {
		opts.FullAlpha = f.fullAlpha
	}

	// Rows are requested in characters; each holds two pixel rows.
	if fs.Changed("width") {
		opts.Size.Width = termpic.Exactly(f.width)
	}
	if fs.Changed("height") {
		opts.Size.Height = termpic.Exactly(f.height * 2)
	}

	bg, err := termpic.ParseRGB(cfg.Background)
	if err != nil {
		return opts, err
	}
	if f.white {
		bg = termpic.White
	}
	if f.gray {
		bg = termpic.Gray
	}
	if f.bg != "" {
		if bg, err = termpic.ParseRGB(f.bg); err != nil {
			return opts, err
		}
	}
	opts.Background = bg

	name := cfg.Renderer
	if f.renderer != "" {
		name = f.renderer
	}
	if opts.Renderer, err = termpic.GetRenderer(name); err != nil {
		return opts, err
	}
	if _, ok := opts.Renderer.(*termpic.MosaicRenderer); ok && (opts.NoAlpha || opts.FullAlpha) {
		log.Warn("mosaic renderer draws every cell, --no-alpha and --full-alpha have no effect")
	}

	return opts, nil
}

// Run executes the command with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	log.SetHandler(clihander.New(stderr))
	log.SetLevel(log.InfoLevel)

	rootCmd := newRootCmd(stdout)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		rootCmd.SetOut(stderr)
		rootCmd.Usage()
		return ExitUsage
	}

	log.Error(err.Error())
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
