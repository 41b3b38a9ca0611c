package extractor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// extractImage decodes the image, runs a light cleanup pipeline and feeds
// the result through tesseract.
func extractImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	processed := preprocess(img)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, processed, &jpeg.Options{Quality: 100}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to get text: %w", err)
	}

	return text, nil
}

// preprocess improves OCR accuracy on photographed documents: grayscale,
// contrast normalization, then a mild sharpen.
func preprocess(img image.Image) image.Image {
	result := imaging.Grayscale(img)
	result = imaging.AdjustContrast(result, 10)
	result = imaging.Sharpen(result, 0.5)
	return result
}
