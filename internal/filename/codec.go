// Package filename holds the pure naming and encoding helpers for stored
// files: internal identifier generation, display-name sanitization, and
// Content-Disposition header encoding.
package filename

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// GenerateInternalName builds a collision-resistant, filesystem-safe
// identifier of the form `<epoch-ms>_<16 hex chars>.<ext>`. The extension is
// taken from originalName, lowercased and stripped to [a-z0-9]; every other
// character comes from the clock or crypto/rand, so the result carries no
// user-controlled bytes.
func GenerateInternalName(originalName string) string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return fmt.Sprintf("%d_%s.%s", time.Now().UnixMilli(), hex.EncodeToString(buf), safeExt(originalName))
}

func safeExt(name string) string {
	ext := strings.ToLower(path.Ext(name))
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeOriginalName strips path separators from a user-supplied name and
// applies NFC normalization. Names that are not valid UTF-8 are returned
// with separators stripped but otherwise untouched; a bad name must not
// reject the upload.
func SanitizeOriginalName(name string) string {
	stripped := strings.NewReplacer("/", "", "\\", "").Replace(name)
	return Normalize(stripped)
}

// Normalize applies NFC normalization, failing soft on invalid UTF-8.
// Stored names are normalized on write and again on every read.
func Normalize(name string) string {
	if !utf8.ValidString(name) {
		return name
	}
	return norm.NFC.String(name)
}

// BuildContentDisposition produces a header value carrying the display name
// twice: a legacy `filename` parameter restricted to printable ASCII for old
// clients, and an RFC 5987 `filename*` parameter covering the full Unicode
// name. dispositionType is "attachment" or "inline".
func BuildContentDisposition(displayName, dispositionType string) string {
	return fmt.Sprintf("%s; filename=%q; filename*=UTF-8''%s",
		dispositionType, legacyASCII(displayName), encodeRFC5987(displayName))
}

func legacyASCII(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x20 && name[i] <= 0x7e {
			b.WriteByte(name[i])
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// encodeRFC5987 percent-encodes a UTF-8 string for use in an ext-value.
// Beyond the usual unreserved set, `'`, `(`, `)` and `*` are encoded as
// well: they are reserved in the RFC 5987 ext-value grammar.
func encodeRFC5987(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '_' || c == '.' || c == '!' || c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}
