// Package upload implements the upload and deletion lifecycle: record
// keeping, destination resolution, and response building.
package upload

import (
	"mime"
	"strings"
)

// Kind is the category of an upload, derived from the declared content type.
// It selects the storage subdirectory, the public URL base, and the response
// shape.
type Kind int

const (
	// KindGeneric covers everything that is neither image nor audio. Such
	// uploads are accepted and stored directly under the user's root rather
	// than rejected.
	KindGeneric Kind = iota
	KindImage
	KindAudio
)

// KindOf classifies a parsed media type by its top-level type.
func KindOf(mediaType string) Kind {
	switch strings.SplitN(mediaType, "/", 2)[0] {
	case "image":
		return KindImage
	case "audio":
		return KindAudio
	default:
		return KindGeneric
	}
}

// Subdir returns the storage subdirectory for the kind, empty for generic.
func (k Kind) Subdir() string {
	switch k {
	case KindImage:
		return "images"
	case KindAudio:
		return "audio"
	default:
		return ""
	}
}

// preferredExts pins extensions for the media types clients actually send,
// independent of the host's MIME tables. audio/mp4 has no registered
// extension; m4a is what players expect.
var preferredExts = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"audio/mp4":  "m4a",
	"audio/mpeg": "mp3",
	"audio/mp3":  "mp3",
	"video/mp4":  "mp4",
	"video/webm": "webm",
}

// extensionFor resolves the file extension for a media type, without a
// leading dot. Unknown types get the literal "unknown" so the upload is
// still accepted.
func extensionFor(mediaType string) string {
	if ext, ok := preferredExts[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "unknown"
}
