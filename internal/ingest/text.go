package ingest

import (
	"bytes"
	"os"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads a policy or contract document as text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "ingest: read %s", path)
	}
	text, err := DecodeText(data)
	if err != nil {
		return "", eris.Wrapf(err, "ingest: decode %s", path)
	}
	return text, nil
}

// DecodeText returns data as UTF-8. Bytes that are not valid UTF-8 are
// decoded as Windows-1252.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	zap.L().Debug("ingest: falling back to windows-1252")
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", eris.Wrap(err, "ingest: windows-1252 decode")
	}
	return string(out), nil
}
