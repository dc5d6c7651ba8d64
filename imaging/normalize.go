// Package imaging turns an uploaded scan into the fixed-size grayscale
// tensor the classifier consumes.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"golang.org/x/image/draw"
)

// Classifier input dimensions.
const (
	Width  = 650
	Height = 650
)

// Tensor is a single-channel image plane with values in [0,1]. It lives for
// one request only and is never persisted.
type Tensor struct {
	Width  int
	Height int
	Pixels []float64 // row-major, len == Width*Height
}

// At returns the pixel value at (x, y).
func (t *Tensor) At(x, y int) float64 {
	return t.Pixels[y*t.Width+x]
}

// DecodeError reports an upload that could not be decoded by any decoder in
// the chain for its declared extension.
type DecodeError struct {
	Ext string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q image: %v", e.Ext, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type decoder struct {
	name string
	fn   func(data []byte) (image.Image, error)
}

var stdDecoder = decoder{
	name: "std",
	fn: func(data []byte) (image.Image, error) {
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	},
}

var dicomDecoder = decoder{
	name: "dicom",
	fn:   decodeDICOM,
}

// decodersFor returns the ordered decoder chain for an extension: a primary
// decoder and at most one fallback.
func decodersFor(ext string) []decoder {
	if strings.EqualFold(strings.TrimPrefix(ext, "."), "dcm") {
		return []decoder{dicomDecoder, stdDecoder}
	}
	return []decoder{stdDecoder}
}

// Normalize decodes raw upload bytes and produces a Width×Height grayscale
// tensor with values linearly rescaled from [0,255] to [0,1]. The caller is
// responsible for enforcing the extension allow-list before calling.
func Normalize(data []byte, ext string) (*Tensor, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Ext: ext, Err: fmt.Errorf("empty payload")}
	}

	var img image.Image
	var lastErr error
	for _, d := range decodersFor(ext) {
		var err error
		if img, err = d.fn(data); err == nil {
			break
		}
		img = nil
		lastErr = fmt.Errorf("%s decoder: %w", d.name, err)
	}
	if img == nil {
		return nil, &DecodeError{Ext: ext, Err: lastErr}
	}

	return toTensor(img), nil
}

// toTensor resizes to the classifier dimensions and converts to grayscale.
func toTensor(img image.Image) *Tensor {
	gray := image.NewGray(image.Rect(0, 0, Width, Height))
	draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	t := &Tensor{
		Width:  Width,
		Height: Height,
		Pixels: make([]float64, Width*Height),
	}
	for i, v := range gray.Pix {
		t.Pixels[i] = float64(v) / 255.0
	}
	return t
}

func decodeDICOM(data []byte) (image.Image, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("no pixel data: %w", err)
	}

	info := dicom.MustGetPixelDataInfo(el.Value)
	if len(info.Frames) == 0 {
		return nil, fmt.Errorf("pixel data has no frames")
	}

	// Single-slice scans only; multi-frame studies use the first slice.
	img, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("frame to image: %w", err)
	}
	return img, nil
}
