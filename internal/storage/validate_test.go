package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	maxImage      = 5 * 1024 * 1024
	maxAttachment = 20 * 1024 * 1024
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(1024, "image/png", maxImage))
	assert.NoError(t, ValidateImage(maxImage, "image/jpeg", maxImage))

	assert.Error(t, ValidateImage(maxImage+1, "image/png", maxImage))
	assert.Error(t, ValidateImage(1024, "application/pdf", maxImage))
	assert.Error(t, ValidateImage(0, "image/png", maxImage))
}

func TestValidateAttachment(t *testing.T) {
	assert.NoError(t, ValidateAttachment(1024, "application/pdf", maxAttachment))
	assert.NoError(t, ValidateAttachment(1024, "image/webp", maxAttachment))
	assert.NoError(t, ValidateAttachment(maxAttachment, "application/msword", maxAttachment))

	assert.Error(t, ValidateAttachment(maxAttachment+1, "application/pdf", maxAttachment))
	assert.Error(t, ValidateAttachment(1024, "application/zip", maxAttachment))
	assert.Error(t, ValidateAttachment(1024, "text/html", maxAttachment))
}
