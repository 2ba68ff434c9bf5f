// Package dataurl encodes uploaded documents as self-describing base64 data URLs
// (data:<mime>;base64,<payload>) and validates them against a MIME allow-list and a size ceiling.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const KB = 1024

// ErrMalformed is returned by Decode when the input is not a base64 data URL.
var ErrMalformed = errors.New("malformed data url")

var shape = regexp.MustCompile(`^data:([a-zA-Z0-9!#$&^_.+-]+/[a-zA-Z0-9!#$&^_.+-]+);base64,([A-Za-z0-9+/]*={0,2})$`)

// Encode wraps raw bytes into a tagged data URL carrying the MIME type.
func Encode(data []byte, mimeType string) string {
	return "data:" + strings.ToLower(mimeType) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode is the exact inverse of Encode.
func Decode(s string) ([]byte, string, error) {
	m := shape.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, "", ErrMalformed
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return data, strings.ToLower(m[1]), nil
}

// Allowed reports whether mimeType matches one of the patterns. Patterns may end with "/*".
func Allowed(mimeType string, patterns []string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, p := range patterns {
		p = strings.ToLower(p)
		if strings.HasSuffix(p, "/*") {
			if strings.HasPrefix(mimeType, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if p == mimeType {
			return true
		}
	}
	return false
}

// Validate checks shape, declared type, decoded size and sniffed content of a data URL.
func Validate(s string, allowed []string, maxBytes int) error {
	data, declared, err := Decode(s)
	if err != nil {
		return &FileError{Kind: Malformed, Err: err}
	}
	if !Allowed(declared, allowed) {
		return &FileError{Kind: BadType, MimeType: declared}
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return &FileError{Kind: TooLarge, Size: len(data), Limit: maxBytes}
	}
	if len(data) == 0 {
		return &FileError{Kind: Malformed, Err: errors.New("empty document")}
	}
	if detected := mimetype.Detect(data); !sameFamily(declared, detected) {
		return &FileError{Kind: BadType, MimeType: declared, Detected: detected.String()}
	}
	return nil
}

// sameFamily accepts a declared type when the sniffed content is that type, one of its aliases,
// or shares its top-level family (image/jpg vs image/jpeg, image/x-png ...).
func sameFamily(declared string, detected *mimetype.MIME) bool {
	if detected.Is(declared) {
		return true
	}
	top := func(m string) string {
		if i := strings.IndexByte(m, '/'); i > 0 {
			return m[:i]
		}
		return m
	}
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("application/octet-stream") || m.Is("text/plain") {
			break
		}
		if top(m.String()) == top(declared) {
			return true
		}
	}
	return false
}
