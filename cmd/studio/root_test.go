package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHashKeyCmd(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stdin string
		args  []string
	}{
		{"argument", "", []string{"hash-key", "s3cret"}},
		{"stdin", "s3cret\n", []string{"hash-key"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, tc.stdin, tc.args...)
			if err != nil {
				t.Fatalf("hash-key: %v", err)
			}
			hash := strings.TrimSpace(out)
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
				t.Errorf("printed hash does not match key: %v", err)
			}
		})
	}
}

func TestHashKeyCmd_Empty(t *testing.T) {
	if _, err := runCLI(t, "\n", "hash-key"); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestThumbnailCmd_RequiresBackground(t *testing.T) {
	if _, err := runCLI(t, "", "thumbnail", "Hello"); err == nil {
		t.Error("expected error without --image or --image-url")
	}
}

func TestThumbnailFlags_Build(t *testing.T) {
	tf := thumbnailFlags{style: "Minimalist", scheme: "Grayscale", position: "Top"}
	spec, err := tf.build("Title")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.Title != "Title" || spec.Style != "Minimalist" {
		t.Errorf("spec = %+v", spec)
	}

	tf.style = "Retro"
	if _, err := tf.build("Title"); err == nil {
		t.Error("expected validation error for unknown style")
	}
}

func TestScriptCmd_RejectsUnknownStyle(t *testing.T) {
	if _, err := runCLI(t, "", "script", "budgeting", "--style", "Haiku"); err == nil {
		t.Error("expected error for unknown style")
	}
}
