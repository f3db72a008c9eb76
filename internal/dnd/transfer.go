package dnd

import (
	"mime"
	"strings"
)

// MimeTextPlain is the media type carried by image-address transfers
const MimeTextPlain = "text/plain"

// Description advertises what a transfer carries
type Description struct {
	Label     string
	MimeTypes []string
}

// HasMimeType reports whether any advertised type matches want
func (d Description) HasMimeType(want string) bool {
	for _, t := range d.MimeTypes {
		if MatchesMime(t, want) {
			return true
		}
	}
	return false
}

// Item is a single entry of a transfer payload
type Item struct {
	Text string
}

// TransferData is the payload of a single drag-and-drop operation
type TransferData struct {
	Description Description
	Items       []Item
}

// NewPlainText builds a single-item text/plain payload
func NewPlainText(label, text string) TransferData {
	return TransferData{
		Description: Description{
			Label:     label,
			MimeTypes: []string{MimeTextPlain},
		},
		Items: []Item{{Text: text}},
	}
}

// FirstText returns the text of the first item.
// ok is false when the payload is empty.
func (t TransferData) FirstText() (text string, ok bool) {
	if len(t.Items) == 0 {
		return "", false
	}
	return t.Items[0].Text, true
}

// MatchesMime compares two media types ignoring case and parameters,
// so "Text/Plain; charset=utf-8" matches "text/plain".
func MatchesMime(advertised, want string) bool {
	return baseMediaType(advertised) == baseMediaType(want)
}

func baseMediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		// Unparseable values still match on their bare prefix
		mt, _, _ = strings.Cut(v, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
