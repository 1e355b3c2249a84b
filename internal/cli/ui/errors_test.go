package ui

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	bcerrors "github.com/conduit-lang/buildconf/internal/errors"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "configuration error",
				Problem: "Root output directory is not bound yet",
			},
			contains: []string{"❌", "CONFIGURATION ERROR", "Root output directory is not bound yet"},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Problem:     "Project not found",
				Suggestions: []string{"app", "maps"},
			},
			contains: []string{"Did you mean: app, maps?"},
		},
		{
			name: "warning with details",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Kotlin unit skipped",
				Details: []string{"project: app"},
			},
			contains: []string{"⚠️", "Kotlin unit skipped", "   project: app"},
		},
		{
			name: "help commands",
			opts: ErrorOptions{
				Level:        ErrorLevelInfo,
				Problem:      "hint",
				HelpCommands: []string{"Get help: buildconf --help"},
			},
			contains: []string{"ℹ️", "→ Get help: buildconf --help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			out := FormatError(tt.opts)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatBuildError_Configuration(t *testing.T) {
	err := bcerrors.NewConfigurationError(bcerrors.ErrUnknownProject).
		WithMessage("evaluation dependency on project %q, which is not in the project graph", "app").
		WithNode("app").
		WithSuggestions("ap")

	out := FormatBuildError(fmt.Errorf("apply: %w", err), true)

	assert.True(t, strings.HasPrefix(out, "❌ CONFIGURATION ERROR [C104]:"))
	assert.Contains(t, out, "project: app")
	assert.Contains(t, out, "Did you mean: ap?")
	assert.Contains(t, out, "buildconf projects")
}

func TestFormatBuildError_Filesystem(t *testing.T) {
	err := bcerrors.NewFilesystemError(bcerrors.ErrDeleteFailed, "/repo/build", os.ErrPermission)

	out := FormatBuildError(err, true)

	assert.Contains(t, out, "FILESYSTEM ERROR [F201]")
	assert.Contains(t, out, "path: /repo/build")
	assert.Contains(t, out, "caused by: permission denied")
}

func TestFormatBuildError_PlainError(t *testing.T) {
	out := FormatBuildError(fmt.Errorf("boom"), true)
	assert.Contains(t, out, "ERROR: boom")
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "Deleted /repo/build", true)
	assert.Equal(t, "✓ Deleted /repo/build\n", buf.String())
}

func TestWarning(t *testing.T) {
	assert.Contains(t, Warning("no build script found", true), "⚠️ no build script found")
}
