package dataset

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncodings is the order in which the loader tries to decode a file.
var DefaultEncodings = []string{"utf-8", "latin1", "iso-8859-1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type textEncoding struct {
	name   string
	enc    encoding.Encoding
	strict bool
}

// resolveEncodings maps IANA names (and their registered aliases) to decoders.
func resolveEncodings(names []string) ([]textEncoding, error) {
	out := make([]textEncoding, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("unsupported encoding %q", name)
		}
		out = append(out, textEncoding{
			name:   name,
			enc:    enc,
			strict: enc == unicode.UTF8 || isUTF8Name(name),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no encodings configured")
	}
	return out, nil
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8", "csutf8":
		return true
	}
	return false
}

// decode converts raw bytes to UTF-8. UTF-8 input is validated rather than
// repaired, so a file with stray Latin-1 bytes fails here and the next
// encoding gets a turn.
func (t textEncoding) decode(raw []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if t.strict {
		out, _, err = transform.Bytes(encoding.UTF8Validator, raw)
	} else {
		out, err = t.enc.NewDecoder().Bytes(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.name, err)
	}
	return out, nil
}

// stripBOM drops a leading UTF-8 byte-order mark before any decoder sees the
// bytes, so single-byte fallbacks do not turn it into "ï»¿".
func stripBOM(raw []byte) []byte {
	return bytes.TrimPrefix(raw, utf8BOM)
}
