// Package imageenc converts image files into inline data URIs suitable
// for storage alongside the product they belong to.
package imageenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// ErrEncoding is returned when the image source cannot be read.
var ErrEncoding = errors.New("image encoding failed")

// Encode reads the whole image and returns it as a base64 data URI
// with a sniffed media type. The conversion is single-shot and not
// cancelable; no size limit or compression is applied; storage grows
// proportionally to the image.
func Encode(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil reader", ErrEncoding)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrEncoding)
	}

	mime := mimetype.Detect(data)

	return fmt.Sprintf(
		"data:%s;base64,%s",
		mime.String(),
		base64.StdEncoding.EncodeToString(data),
	), nil
}
