package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00")
)

func TestValidateImage(t *testing.T) {
	got, err := ValidateImage(pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)

	got, err = ValidateImage(jpegHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", got)

	// a mislabeled image type still resolves to what was sniffed
	got, err = ValidateImage(gifHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", got)
}

func TestValidateImage_Rejects(t *testing.T) {
	_, err := ValidateImage(nil, "image/png")
	assert.Error(t, err)

	_, err = ValidateImage([]byte("hello, world"), "image/png")
	assert.Error(t, err)

	_, err = ValidateImage(pngHeader, "application/pdf")
	assert.Error(t, err)

	_, err = ValidateImage(pngHeader, ";;;")
	assert.Error(t, err)
}

func TestImageExtension(t *testing.T) {
	assert.Equal(t, ".png", ImageExtension("image/png"))
	assert.Equal(t, ".jpg", ImageExtension("image/jpeg"))
	assert.Equal(t, ".bin", ImageExtension("text/plain"))
}
