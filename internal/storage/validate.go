package storage

import (
	"fmt"
	"strings"
)

// Attachment types beyond images that message uploads accept.
var attachmentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateImage checks the mime allow-list (image/* only) and size ceiling
// for product and production-stage photos.
func ValidateImage(size int64, contentType string, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unsupported file type %q: only images are allowed", contentType)
	}
	if size <= 0 {
		return fmt.Errorf("empty file")
	}
	if size > maxBytes {
		return fmt.Errorf("file too large: %d bytes exceeds the %d byte limit", size, maxBytes)
	}
	return nil
}

// ValidateAttachment checks the mime allow-list (image/*, pdf, doc) and size
// ceiling for message attachments.
func ValidateAttachment(size int64, contentType string, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "image/") && !attachmentTypes[contentType] {
		return fmt.Errorf("unsupported file type %q", contentType)
	}
	if size <= 0 {
		return fmt.Errorf("empty file")
	}
	if size > maxBytes {
		return fmt.Errorf("file too large: %d bytes exceeds the %d byte limit", size, maxBytes)
	}
	return nil
}
