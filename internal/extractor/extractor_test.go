package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuwise/legal-assistant/pkg/logger"
)

func TestExtractPlainText(t *testing.T) {
	e := New(logger.NewTestLogger())

	res, err := e.Extract("notice.txt", strings.NewReader("This is a legal notice."))
	require.NoError(t, err)
	assert.False(t, res.Degraded())
	assert.Equal(t, "This is a legal notice.", res.Text)
}

func TestExtractPlainTextUppercaseExtension(t *testing.T) {
	e := New(logger.NewTestLogger())

	res, err := e.Extract("NOTICE.TXT", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "content", res.Text)
}

func TestExtractPlainTextRejectsInvalidUTF8(t *testing.T) {
	e := New(logger.NewTestLogger())

	_, err := e.Extract("bad.txt", strings.NewReader("\xff\xfe"))
	assert.Error(t, err)
}

func TestExtractUnsupportedType(t *testing.T) {
	e := New(logger.NewTestLogger())

	res, err := e.Extract("malware.exe", strings.NewReader("MZ"))
	require.NoError(t, err)
	assert.True(t, res.Degraded())
	assert.ErrorIs(t, res.Err, ErrUnsupported)
	assert.Equal(t, "Unsupported file type.", res.Text)
}

func TestExtractCorruptPDFDegradesInBand(t *testing.T) {
	e := New(logger.NewTestLogger())

	res, err := e.Extract("broken.pdf", strings.NewReader("not a pdf at all"))
	require.NoError(t, err)
	assert.True(t, res.Degraded())
	assert.True(t, strings.HasPrefix(res.Text, "Error processing PDF: "), "got %q", res.Text)
}

func TestExtractCorruptImageDegradesInBand(t *testing.T) {
	e := New(logger.NewTestLogger())

	res, err := e.Extract("scan.jpg", strings.NewReader("not a jpeg"))
	require.NoError(t, err)
	assert.True(t, res.Degraded())
	assert.True(t, strings.HasPrefix(res.Text, "Error processing image: "), "got %q", res.Text)
}
