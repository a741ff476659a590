// Package notes holds helpers for the notes markup format: inline base64
// image tokens and display truncation.
package notes

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// Image is an inline image carried inside a notes blob or a clipboard
// payload, kept as raw bytes plus its MIME type.
type Image struct {
	MIME string
	Data []byte
}

// DataURI renders the image as a data URI, the form it is embedded in
// notes markup as.
func (img Image) DataURI() string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Markup renders the inline image token stored in the notes blob.
func (img Image) Markup() string {
	return `<img src="` + img.DataURI() + `">`
}

const dataURIPrefix = "data:image/"

// FirstImage scans a clipboard payload for an image and returns the first
// one found. Two forms are recognized: a data URI anywhere in the payload,
// and a payload that is entirely base64 of a known image format. Anything
// else is not an image and pastes as plain text.
func FirstImage(payload string) (Image, bool) {
	if img, ok := firstDataURI(payload); ok {
		return img, true
	}
	return rawBase64Image(payload)
}

func firstDataURI(payload string) (Image, bool) {
	start := strings.Index(payload, dataURIPrefix)
	if start < 0 {
		return Image{}, false
	}
	rest := payload[start+len("data:"):]

	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return Image{}, false
	}
	mime := rest[:sep]

	enc := rest[sep+len(";base64,"):]
	if end := strings.IndexFunc(enc, notBase64); end >= 0 {
		enc = enc[:end]
	}

	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil || len(data) == 0 {
		return Image{}, false
	}
	return Image{MIME: mime, Data: data}, true
}

func rawBase64Image(payload string) (Image, bool) {
	enc := strings.TrimSpace(payload)
	if enc == "" {
		return Image{}, false
	}
	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return Image{}, false
	}
	mime, ok := sniffImage(data)
	if !ok {
		return Image{}, false
	}
	return Image{MIME: mime, Data: data}, true
}

func notBase64(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return false
	case r == '+' || r == '/' || r == '=':
		return false
	}
	return true
}

var imageMagics = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("\x89PNG\r\n\x1a\n"), "image/png"},
	{[]byte("\xff\xd8\xff"), "image/jpeg"},
	{[]byte("GIF87a"), "image/gif"},
	{[]byte("GIF89a"), "image/gif"},
}

func sniffImage(data []byte) (string, bool) {
	for _, m := range imageMagics {
		if bytes.HasPrefix(data, m.prefix) {
			return m.mime, true
		}
	}
	return "", false
}

// TruncateTitle shortens a display title the way the slide-over header
// does: anything over 50 runes becomes the first 47 plus an ellipsis.
func TruncateTitle(title string) string {
	return truncate(title, 50, 47)
}

// TruncateURL shortens a display URL: over 60 runes becomes the first 57
// plus an ellipsis.
func TruncateURL(url string) string {
	return truncate(url, 60, 57)
}

func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}
