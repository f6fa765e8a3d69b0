// Package kroki renders diagram markup through the kroki.io web service.
//
// Kroki accepts the full diagram source inside the request URL: the text is
// deflate-compressed, encoded with the URL-safe base64 alphabet, and placed
// in the last path segment of a GET request:
//
//	https://kroki.io/<language>/<format>/<payload>
//
// The encoding is deterministic, so the same source always produces the
// same URL.
package kroki

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/figtools/figgen/pkg/errors"
)

// DefaultHost is the public kroki rendering service.
const DefaultHost = "https://kroki.io"

// languages maps source file extensions to kroki language keywords.
// The table also carries ".dot" for completeness even though DOT files are
// normally rendered locally by graphviz.
var languages = map[string]string{
	".mmd":  "mermaid",
	".dot":  "graphviz",
	".puml": "plantuml",
}

// Language returns the kroki language keyword for a source file extension
// (including the leading dot, case-insensitive). Unknown extensions yield a
// MISSING_LANGUAGE error.
func Language(ext string) (string, error) {
	lang, ok := languages[strings.ToLower(ext)]
	if !ok {
		return "", errors.New(errors.ErrCodeMissingLanguage, "no kroki language for extension %q", ext)
	}
	return lang, nil
}

// Extensions returns the set of source extensions the service accepts.
func Extensions() []string {
	exts := make([]string, 0, len(languages))
	for ext := range languages {
		exts = append(exts, ext)
	}
	return exts
}

// Encode compresses source with zlib at best compression and encodes the
// result with the URL-safe base64 alphabet (padding retained, as the
// service expects).
func Encode(source []byte) (string, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(source); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// RequestURL builds the GET URL for rendering source as the given language
// and output format against host.
func RequestURL(host, language, format string, source []byte) (string, error) {
	payload, err := Encode(source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s/%s", host, language, format, payload), nil
}
