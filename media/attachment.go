// Package media classifies message attachments. The simulation has no
// object storage, so attachments become data URLs, mirroring how the
// hosted variant returned publicly resolvable URLs.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"messenger-lab/errors"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVoice Kind = "voice"
)

// Attachment is a classified payload ready to be placed on a message.
type Attachment struct {
	Kind Kind
	URL  string
}

// Classify sniffs the bytes and returns an image or voice attachment.
// Anything that is neither an image nor audio is rejected; messages
// carry no other media kinds.
func Classify(data []byte) (Attachment, error) {
	if len(data) == 0 {
		return Attachment{}, errors.ErrUnknownAttachment
	}

	mt := mimetype.Detect(data)
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		return Attachment{Kind: KindImage, URL: dataURL(mt.String(), data)}, nil
	case strings.HasPrefix(mt.String(), "audio/"):
		return Attachment{Kind: KindVoice, URL: dataURL(mt.String(), data)}, nil
	default:
		return Attachment{}, errors.ErrUnknownAttachment
	}
}

func dataURL(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
