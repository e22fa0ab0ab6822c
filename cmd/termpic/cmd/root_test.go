package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/go-termpic"
)

func createTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, png.Encode(file, img))
	return path
}

func withGeometry(t *testing.T, g termpic.TerminalGeometry) {
	t.Helper()
	orig := queryGeometry
	queryGeometry = func() (termpic.TerminalGeometry, bool) { return g, true }
	t.Cleanup(func() { queryGeometry = orig })
}

func redOverGreen(width int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, 2))
	for x := range width {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{G: 255, A: 255})
	}
	return img
}

// isolateConfig hides any config files of the user running the tests
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Chdir(t.TempDir())
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	isolateConfig(t)
	var out, errOut bytes.Buffer
	code = Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunRendersImage(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, redOverGreen(4))

	code, stdout, _ := runCLI(t, path)
	require.Equal(t, ExitOK, code)

	want := strings.Repeat("\x1b[38;2;0;255;0m\x1b[48;2;255;0;0m▄", 4) + "\x1b[0m\n"
	assert.Equal(t, want, stdout)
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "two arguments", args: []string{"a.png", "b.png"}},
		{name: "unknown flag", args: []string{"--bogus", "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestRunDecodeFailure(t *testing.T) {
	withGeometry(t, termpic.DefaultGeometry)
	missing := filepath.Join(t.TempDir(), "missing.png")

	code, stdout, stderr := runCLI(t, missing)
	assert.Equal(t, ExitDecode, code)
	assert.Empty(t, stdout, "nothing is printed before a fatal error")
	assert.Contains(t, stderr, missing)
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--no-alpha")
	assert.Contains(t, stdout, "--full-alpha")
}

func TestRunFlags(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 2)))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "transparent is skipped",
			args: []string{path},
			want: "\x1b[0m \x1b[0m\n",
		},
		{
			name: "no alpha uses black",
			args: []string{"--no-alpha", path},
			want: "\x1b[38;2;0;0;0m\x1b[48;2;0;0;0m▄\x1b[0m\n",
		},
		{
			name: "white background",
			args: []string{"--no-alpha", "--white", path},
			want: "\x1b[38;2;255;255;255m\x1b[48;2;255;255;255m▄\x1b[0m\n",
		},
		{
			name: "gray wins over white",
			args: []string{"--no-alpha", "--white", "--gray", path},
			want: "\x1b[38;2;32;32;32m\x1b[48;2;32;32;32m▄\x1b[0m\n",
		},
		{
			name: "custom background wins",
			args: []string{"--no-alpha", "--gray", "--bg", "#102030", path},
			want: "\x1b[38;2;16;32;48m\x1b[48;2;16;32;48m▄\x1b[0m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			require.Equal(t, ExitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunSize(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, redOverGreen(4))

	code, stdout, _ := runCLI(t, "--width", "6", "--height", "3", path)
	require.Equal(t, ExitOK, code)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 6, strings.Count(line, termpic.HalfBlock))
	}
}

func TestRunBadBackground(t *testing.T) {
	withGeometry(t, termpic.DefaultGeometry)
	path := createTestPNG(t, redOverGreen(2))

	code, stdout, _ := runCLI(t, "--bg", "not-a-color", path)
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
}

func TestRunConfigFile(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 2)))

	cfg := filepath.Join(t.TempDir(), "termpic.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("background = \"white\"\nno_alpha = true\n"), 0o600))

	code, stdout, stderr := runCLI(t, "--config", cfg, path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, "\x1b[38;2;255;255;255m\x1b[48;2;255;255;255m▄\x1b[0m\n", stdout)

	code, _, _ = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), path)
	assert.Equal(t, ExitFailure, code)
}

func TestRunFlagsOverrideConfigFile(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 2)))

	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{
			name:   "no alpha turned off",
			config: "no_alpha = true\n",
			args:   []string{"--no-alpha=false"},
			want:   "\x1b[0m \x1b[0m\n",
		},
		{
			name:   "no alpha kept from config",
			config: "no_alpha = true\n",
			want:   "\x1b[38;2;0;0;0m\x1b[48;2;0;0;0m▄\x1b[0m\n",
		},
		{
			name:   "full alpha turned off",
			config: "full_alpha = true\n",
			args:   []string{"--full-alpha=false"},
			want:   "\x1b[0m \x1b[0m\n",
		},
		{
			name:   "renderer from flag",
			config: "renderer = \"mosaic\"\n",
			args:   []string{"--renderer", "halfblocks", "--no-alpha"},
			want:   "\x1b[38;2;0;0;0m\x1b[48;2;0;0;0m▄\x1b[0m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := filepath.Join(t.TempDir(), "termpic.toml")
			require.NoError(t, os.WriteFile(cfg, []byte(tt.config), 0o600))

			args := append([]string{"--config", cfg}, tt.args...)
			code, stdout, stderr := runCLI(t, append(args, path)...)
			require.Equal(t, ExitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunIgnoresUserConfig(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 2)))

	isolateConfig(t)
	require.NoError(t, os.WriteFile(".termpic.toml", []byte("no_alpha = true\n"), 0o600))
	code, stdout, _ := runCLI(t, path)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "\x1b[0m \x1b[0m\n", stdout, "runs start from a clean config")
}

func TestRunMosaicRenderer(t *testing.T) {
	withGeometry(t, termpic.GeometryFromCells(200, 50))
	path := createTestPNG(t, redOverGreen(8))

	code, stdout, stderr := runCLI(t, "--renderer", "mosaic", path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
	assert.NotContains(t, stderr, "no effect")

	code, _, stderr = runCLI(t, "--renderer", "mosaic", "--full-alpha", path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stderr, "--full-alpha have no effect")

	code, _, _ = runCLI(t, "--renderer", "kitty", path)
	assert.Equal(t, ExitFailure, code)
}
