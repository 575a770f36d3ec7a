package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/draw"
	"image/jpeg"
	"os"

	"github.com/spetersoncode/dreamfuse"
)

// JPEGQuality is used when a non-JPEG image is converted for upload.
const JPEGQuality = 90

// EncodeJPEGBase64 reads the image at path and returns it as base64 JPEG.
// JPEG files are passed through; other formats are flattened onto white and
// re-encoded.
func EncodeJPEGBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &dreamfuse.ImageError{Op: "read", URL: path, Err: err}
	}
	out, err := toJPEG(data)
	if err != nil {
		return "", &dreamfuse.ImageError{Op: "encode", URL: path, Err: err}
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func toJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if format == "jpeg" {
		return data, nil
	}

	// Transparent regions would otherwise turn black
	bounds := img.Bounds()
	rgb := image.NewRGBA(bounds)
	draw.Draw(rgb, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(rgb, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
