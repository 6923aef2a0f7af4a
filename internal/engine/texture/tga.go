// Package texture provides TGA decoding for terrain rasters.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const tgaHeaderSize = 18

// tgaHeader holds the fields of the 18-byte TGA header we care about.
type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// DecodeTGA decodes a TGA image file.
// True-color images (types 2 and 10, 24/32 bpp) decode to *image.RGBA.
// Grayscale images (types 3 and 11, 8 bpp) decode to *image.Gray so they
// can serve directly as height maps.
func DecodeTGA(data []byte) (image.Image, error) {
	hdr, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + hdr.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]
	bytesPerPixel := hdr.bpp / 8

	var set func(x, y int, px []byte)
	var img image.Image
	switch hdr.imageType {
	case TGATypeGray, TGATypeGrayRLE:
		gray := image.NewGray(image.Rect(0, 0, hdr.width, hdr.height))
		set = func(x, y int, px []byte) {
			gray.SetGray(x, y, color.Gray{Y: px[0]})
		}
		img = gray
	default:
		rgba := image.NewRGBA(image.Rect(0, 0, hdr.width, hdr.height))
		set = func(x, y int, px []byte) {
			a := uint8(255)
			if len(px) == 4 {
				a = px[3]
			}
			// TGA stores BGR(A)
			rgba.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
		}
		img = rgba
	}

	// Rows are stored bottom-up unless bit 5 of the descriptor is set.
	put := func(idx int, px []byte) {
		x := idx % hdr.width
		y := idx / hdr.width
		if !hdr.topToBottom {
			y = hdr.height - 1 - y
		}
		set(x, y, px)
	}

	if hdr.imageType == TGATypeTrueColor || hdr.imageType == TGATypeGray {
		expectedSize := hdr.width * hdr.height * bytesPerPixel
		if len(pixelData) < expectedSize {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < hdr.width*hdr.height; i++ {
			put(i, pixelData[i*bytesPerPixel:(i+1)*bytesPerPixel])
		}
		return img, nil
	}

	if err := decodeTGARLE(pixelData, hdr.width*hdr.height, bytesPerPixel, put); err != nil {
		return nil, err
	}
	return img, nil
}

// parseTGAHeader validates the header and reports the supported layouts.
func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}

	hdr := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return hdr, fmt.Errorf("color-mapped TGA not supported")
	}
	switch hdr.imageType {
	case TGATypeTrueColor, TGATypeTrueColorRLE:
		if hdr.bpp != 24 && hdr.bpp != 32 {
			return hdr, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", hdr.bpp)
		}
	case TGATypeGray, TGATypeGrayRLE:
		if hdr.bpp != 8 {
			return hdr, fmt.Errorf("unsupported grayscale TGA bit depth %d (only 8 supported)", hdr.bpp)
		}
	default:
		return hdr, fmt.Errorf("unsupported TGA type %d", hdr.imageType)
	}
	if hdr.width == 0 || hdr.height == 0 {
		return hdr, fmt.Errorf("TGA has zero size %dx%d", hdr.width, hdr.height)
	}
	return hdr, nil
}

// decodeTGARLE walks RLE packets and hands each decoded pixel to put.
func decodeTGARLE(pixelData []byte, pixelCount, bytesPerPixel int, put func(idx int, px []byte)) error {
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", pixelIdx, pixelCount)
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet - repeat single pixel
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA RLE packet truncated")
			}
			px := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet - read count pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return fmt.Errorf("TGA raw packet truncated")
			}
			put(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return nil
}
