// Package csvimport parses assessment-question CSV uploads: byte decoding
// across the encodings question banks actually arrive in, lettered option
// cells, and row-level validation with per-row error collection.
package csvimport

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// smartPunctuation maps the Word/Excel "smart" characters that show up in
// exported question banks to plain ASCII.
var smartPunctuation = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
	" ", " ",
)

// DecodeContent decodes raw CSV bytes by trying UTF-8, UTF-8 with BOM,
// Windows-1252, and Latin-1 in that order, then normalizes smart punctuation
// to ASCII. The first encoding that decodes cleanly wins.
func DecodeContent(content []byte) (string, error) {
	decoded, err := decodeBytes(content)
	if err != nil {
		return "", err
	}
	return smartPunctuation.Replace(decoded), nil
}

func decodeBytes(content []byte) (string, error) {
	if bytes.HasPrefix(content, utf8BOM) {
		stripped := content[len(utf8BOM):]
		if utf8.Valid(stripped) {
			return string(stripped), nil
		}
	} else if utf8.Valid(content) {
		return string(content), nil
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(content); err == nil {
		s := string(decoded)
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s, nil
		}
	}

	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content); err == nil {
		return string(decoded), nil
	}

	return "", errors.New("unable to decode CSV content with any supported encoding")
}
