package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	if got := Generate("a.wiki", "same\n", "same\n"); got != "" {
		t.Errorf("expected empty diff, got %q", got)
	}

	got := Generate("a.wiki", "=Title=\nbody\n", "= Title =\nbody\n")
	for _, want := range []string{
		"--- a.wiki",
		"+++ a.wiki (formatted)",
		"-=Title=",
		"+= Title =",
		" body",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name          string
		content       string
		wantChange    bool
		wantFormatted string
		wantErr       bool
	}{
		{
			name:          "canonical",
			content:       "= Title =\n- item\n",
			wantFormatted: "= Title =\n- item\n",
		},
		{
			name:          "needs formatting",
			content:       "|a|b|\n",
			wantChange:    true,
			wantFormatted: "| a | b |\n",
		},
		{
			name:    "unterminated fence",
			content: "{{{\ncode\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".wiki")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write page: %v", err)
			}

			unified, formatted, err := File(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("File() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (unified != "") != tt.wantChange {
				t.Errorf("File() diff = %q, wantChange %v", unified, tt.wantChange)
			}
			if formatted != tt.wantFormatted {
				t.Errorf("File() formatted = %q, want %q", formatted, tt.wantFormatted)
			}
		})
	}
}

func TestFileMissing(t *testing.T) {
	if _, _, err := File(filepath.Join(t.TempDir(), "nope.wiki")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRender(t *testing.T) {
	if Render("") != "" {
		t.Error("expected empty output for empty diff")
	}
	out := Render(Generate("a.wiki", "a\n", "b\n"))
	if !strings.Contains(out, "a.wiki") {
		t.Errorf("rendered diff lost the file name:\n%s", out)
	}
}
