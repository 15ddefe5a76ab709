package filename

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var internalNamePattern = regexp.MustCompile(`^\d+_[0-9a-f]{16}\.[a-z0-9]*$`)

func TestGenerateInternalName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{"plain", "report.PDF", ".pdf"},
		{"double extension", "archive.tar.gz", ".gz"},
		{"no extension", "README", "."},
		{"unicode name", "사진.png", ".png"},
		{"hostile extension", "weird.P∆NG", ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateInternalName(tt.original)
			assert.Regexp(t, internalNamePattern, got)
			assert.True(t, strings.HasSuffix(got, tt.wantExt), "got %q", got)
		})
	}
}

func TestGenerateInternalNameUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name := GenerateInternalName("a.png")
		_, dup := seen[name]
		require.False(t, dup, "duplicate internal name %q", name)
		seen[name] = struct{}{}
	}
}

func TestSanitizeOriginalName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.jpg", "photo.jpg"},
		{"forward slashes", "../../etc/passwd", "....etcpasswd"},
		{"backslashes", `..\..\boot.ini`, "....boot.ini"},
		{"mixed separators", `a/b\c.png`, "abc.png"},
		// U+0065 U+0301 (e + combining acute) composes to U+00E9
		{"nfc composition", "café.png", "café.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeOriginalName(tt.in))
		})
	}
}

func TestSanitizeOriginalNameInvalidUTF8(t *testing.T) {
	in := "bad\xff/name.png"
	got := SanitizeOriginalName(in)
	assert.NotContains(t, got, "/")
	assert.Equal(t, "bad\xffname.png", got, "invalid UTF-8 passes through un-normalized")
}

func TestBuildContentDisposition(t *testing.T) {
	got := BuildContentDisposition("café.png", "attachment")
	assert.Equal(t, `attachment; filename="caf.png"; filename*=UTF-8''caf%C3%A9.png`, got)
}

func TestBuildContentDispositionReservedChars(t *testing.T) {
	// ' ( ) * are valid in encodeURIComponent output but reserved in the
	// RFC 5987 ext-value grammar, so they must be percent-encoded too.
	got := BuildContentDisposition("it's (v2)*.png", "inline")
	assert.Contains(t, got, `filename="it's (v2)*.png"`)
	assert.Contains(t, got, `filename*=UTF-8''it%27s%20%28v2%29%2A.png`)
}

func TestBuildContentDispositionASCIIOnly(t *testing.T) {
	got := BuildContentDisposition("plain.txt", "attachment")
	assert.Equal(t, `attachment; filename="plain.txt"; filename*=UTF-8''plain.txt`, got)
}
