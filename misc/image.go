package misc

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// SavePNG writes the image to fileName, creating or truncating it.
func SavePNG(fileName string, img image.Image) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create image %s - %s", fileName, err)
	}
	if err = png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("unable to encode image %s - %s", fileName, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("unable to close image %s - %s", fileName, err)
	}
	return nil
}

// RGBAFromPixels wraps a raw rgba pixel buffer as an image without copying it.
func RGBAFromPixels(pixels []uint8, width int, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    pixels,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
}
