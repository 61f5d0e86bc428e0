package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/pngme"
)

// writePNG stores a minimal valid PNG in a temp directory.
func writePNG(t *testing.T) string {
	t.Helper()

	ihdr := pngme.NewChunk(pngme.TypeIHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0})
	idat := pngme.NewChunk(pngme.TypeIDAT, []byte{0x78, 0x9c, 0x63, 0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01})
	c := pngme.NewContainer(ihdr, idat, pngme.NewChunk(pngme.TypeIEND, nil))

	path := filepath.Join(t.TempDir(), "dice.png")
	if err := os.WriteFile(path, c.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestEncodeDecodeRemove(t *testing.T) {
	path := writePNG(t)

	code, out, errOut := runCLI(t, "encode", path, "ruSt", "This is a secret message!")
	if code != 0 {
		t.Fatalf("encode exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "ruSt") {
		t.Errorf("unexpected encode output %q", out)
	}

	code, out, errOut = runCLI(t, "decode", path, "ruSt")
	if code != 0 {
		t.Fatalf("decode exit %d: %s", code, errOut)
	}
	if out != "This is a secret message!\n" {
		t.Errorf("decode printed %q", out)
	}

	code, _, errOut = runCLI(t, "remove", "-backup", ".bak", path, "ruSt")
	if code != 0 {
		t.Fatalf("remove exit %d: %s", code, errOut)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}

	code, _, errOut = runCLI(t, "decode", path, "ruSt")
	if code != 1 {
		t.Errorf("decode after remove: exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "chunk not found") {
		t.Errorf("expected not-found message, got %q", errOut)
	}
}

func TestEncode_OutputAndCompression(t *testing.T) {
	path := writePNG(t)
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.png")

	msg := strings.Repeat("squeeze ", 100)
	if code, _, errOut := runCLI(t, "encode", "-o", out, "-compress", path, "ruSt", msg); code != 0 {
		t.Fatalf("encode exit %d: %s", code, errOut)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(after, original) {
		t.Error("input file changed although -o was given")
	}

	code, got, errOut := runCLI(t, "decode", out, "ruSt")
	if code != 0 {
		t.Fatalf("decode exit %d: %s", code, errOut)
	}
	if strings.TrimSuffix(got, "\n") != msg {
		t.Errorf("decoded message differs")
	}
}

func TestRemove_NotFound(t *testing.T) {
	path := writePNG(t)
	before, _ := os.ReadFile(path)

	code, _, _ := runCLI(t, "remove", path, "nope")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("failed remove modified the file")
	}
}

func TestPrint_Formats(t *testing.T) {
	a, b := writePNG(t), writePNG(t)
	if code, _, errOut := runCLI(t, "encode", b, "ruSt", "hello"); code != 0 {
		t.Fatalf("encode: %s", errOut)
	}

	t.Run("json", func(t *testing.T) {
		code, out, errOut := runCLI(t, "print", "-format", "json", a, b)
		if code != 0 {
			t.Fatalf("exit %d: %s", code, errOut)
		}

		var reports []fileReport
		if err := json.Unmarshal([]byte(out), &reports); err != nil {
			t.Fatalf("invalid json: %v\n%s", err, out)
		}
		if len(reports) != 2 || reports[0].Path != a || reports[1].Path != b {
			t.Fatalf("unexpected reports %+v", reports)
		}
		if n := len(reports[1].Chunks); n != 4 || reports[1].Chunks[2].Text != "hello" {
			t.Errorf("unexpected chunks for %s: %+v", b, reports[1].Chunks)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		code, out, errOut := runCLI(t, "print", "-format", "yaml", b)
		if code != 0 {
			t.Fatalf("exit %d: %s", code, errOut)
		}

		var reports []fileReport
		if err := yaml.Unmarshal([]byte(out), &reports); err != nil {
			t.Fatalf("invalid yaml: %v\n%s", err, out)
		}
		if len(reports) != 1 || reports[0].Chunks[2].Type != "ruSt" {
			t.Errorf("unexpected reports %+v", reports)
		}
	})

	t.Run("text", func(t *testing.T) {
		code, out, errOut := runCLI(t, "print", b)
		if code != 0 {
			t.Fatalf("exit %d: %s", code, errOut)
		}
		for _, want := range []string{b, "IHDR", "ruSt", "apRs", "hello", "IEND"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output should contain %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("non-terminal output must not contain ANSI escapes")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if code, _, _ := runCLI(t, "print", "-format", "xml", b); code != 2 {
			t.Errorf("exit %d, want 2", code)
		}
	})
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "encode missing args", args: []string{"encode", "x.png"}},
		{name: "decode extra args", args: []string{"decode", "a", "b", "c"}},
		{name: "bad flag", args: []string{"remove", "-nope", "a", "b"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, tt.args...); code != 2 {
				t.Errorf("exit %d, want 2", code)
			}
		})
	}
}

func TestEncode_InvalidType(t *testing.T) {
	path := writePNG(t)

	code, _, errOut := runCLI(t, "encode", path, "Ru1t", "x")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "not an ASCII letter") {
		t.Errorf("unexpected error output %q", errOut)
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv("PNGME_LOG_LEVEL", "debug")
	path := writePNG(t)

	// No message is present, so decode fails after the open is logged.
	code, _, errOut := runCLI(t, "decode", path, "ruSt")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "opened png") {
		t.Errorf("expected debug log output, got %q", errOut)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, pngme.Version) {
		t.Errorf("version output %q should contain %s", out, pngme.Version)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		info pngme.ChunkInfo
		want string
	}{
		{pngme.ChunkInfo{Critical: true, Public: true, ReservedBitValid: true}, "CPR-"},
		{pngme.ChunkInfo{ReservedBitValid: true, SafeToCopy: true}, "apRs"},
		{pngme.ChunkInfo{Public: true, SafeToCopy: true}, "aP!s"},
	}

	for _, tt := range tests {
		if got := flags(tt.info); got != tt.want {
			t.Errorf("flags(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestNewApp_StylesFollowTheirStream(t *testing.T) {
	var stdout, stderr bytes.Buffer

	tests := []struct {
		name       string
		terminal   io.Writer
		wantStdout bool
		wantStderr bool
	}{
		{name: "stderr is a terminal", terminal: &stderr, wantStderr: true},
		{name: "stdout is a terminal", terminal: &stdout, wantStdout: true},
	}

	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	t.Setenv("NO_COLOR", "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminal = func(w io.Writer) bool { return w == tt.terminal }

			a := newApp(&stdout, &stderr, slog.LevelWarn)
			if a.styles.title.on != tt.wantStdout {
				t.Errorf("stdout styles on = %v, want %v", a.styles.title.on, tt.wantStdout)
			}
			if a.errs.on != tt.wantStderr {
				t.Errorf("error style on = %v, want %v", a.errs.on, tt.wantStderr)
			}
		})
	}
}
