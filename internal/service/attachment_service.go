package service

import (
	"bytes"
	"encoding/base64"

	"github.com/disintegration/imaging"

	"github.com/agrolink/marketplace-service/pkg/util"
)

const (
	// maxAttachmentBytes is the ceiling on the original upload, checked
	// before any decode or store interaction.
	maxAttachmentBytes = 5 << 20

	// maxAttachmentDim bounds both sides of the stored image.
	maxAttachmentDim = 800

	attachmentJPEGQuality = 70
)

// AttachmentService turns a raw uploaded image into the text-safe,
// size-bounded representation embedded in a message: downscaled to at most
// 800px per side, re-encoded as lossy JPEG, base64 data URL output.
type AttachmentService struct{}

// NewAttachmentService builds the service.
func NewAttachmentService() *AttachmentService {
	return &AttachmentService{}
}

// Process validates and transforms the upload. Oversize and undecodable
// inputs are rejected before anything is written.
func (s *AttachmentService) Process(data []byte) (string, error) {
	if len(data) == 0 {
		return "", util.NewValidationError("empty image upload", nil)
	}
	if len(data) > maxAttachmentBytes {
		return "", util.NewPayloadTooLarge("image exceeds the 5MB limit")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", util.NewValidationError("unsupported image format", nil)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxAttachmentDim || bounds.Dy() > maxAttachmentDim {
		img = imaging.Fit(img, maxAttachmentDim, maxAttachmentDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(attachmentJPEGQuality)); err != nil {
		return "", util.NewInternalError(err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
