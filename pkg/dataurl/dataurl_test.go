package dataurl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	imageTypes    = []string{"image/*"}
	pressCardType = []string{"image/*", "application/pdf"}
)

func pngOfSize(n int) []byte {
	sig := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	return append(sig, bytes.Repeat([]byte{0}, n-len(sig))...)
}

func pdfOfSize(n int) []byte {
	sig := []byte("%PDF-1.7\n")
	return append(sig, bytes.Repeat([]byte{' '}, n-len(sig))...)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	raw := pngOfSize(2 * KB)

	encoded := Encode(raw, "image/PNG")
	assert.Contains(t, encoded, "data:image/png;base64,")

	data, mime, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, raw, data)
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"not a data url",
		"data:image/png,plain",
		"data:image/png;base64,@@@",
		"data:;base64,AAAA",
	} {
		_, _, err := Decode(in)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		allowed []string
		want    ErrorKind
	}{
		{"100KB png accepted", Encode(pngOfSize(100*KB), "image/png"), imageTypes, ""},
		{"200KB png too large", Encode(pngOfSize(200*KB), "image/png"), imageTypes, TooLarge},
		{"exactly at limit accepted", Encode(pngOfSize(150*KB), "image/png"), imageTypes, ""},
		{"pdf rejected for images", Encode(pdfOfSize(10*KB), "application/pdf"), imageTypes, BadType},
		{"pdf accepted for press card", Encode(pdfOfSize(10*KB), "application/pdf"), pressCardType, ""},
		{"declared png but pdf content", Encode(pdfOfSize(10*KB), "image/png"), imageTypes, BadType},
		{"garbage string", "hello", imageTypes, Malformed},
		{"empty payload", "data:image/png;base64,", imageTypes, Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in, tt.allowed, 150*KB)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FileError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.want, fe.Kind)
			assert.ErrorIs(t, err, &FileError{Kind: tt.want})
		})
	}
}

func TestValidate_SizeUsesDecodedLength(t *testing.T) {
	// 120KB decoded is ~160KB once base64 encoded; only the decoded size counts.
	encoded := Encode(pngOfSize(120*KB), "image/png")
	require.Greater(t, len(encoded), 150*KB)

	assert.NoError(t, Validate(encoded, imageTypes, 150*KB))
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("image/jpeg", []string{"image/*"}))
	assert.True(t, Allowed("APPLICATION/PDF", []string{"image/*", "application/pdf"}))
	assert.False(t, Allowed("application/pdf", []string{"image/*"}))
	assert.False(t, Allowed("imagex/png", []string{"image/*"}))
}
