package imaging

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"io"
)

// image/png writes fully opaque images as 3-channel truecolor, dropping the
// alpha channel this package exists to add. encodeRGBA always emits color
// type 6 (truecolor with alpha), 8 bits per sample.

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	colorTypeRGBA = 6
	filterNone    = 0
)

func encodeRGBA(w io.Writer, img *image.NRGBA) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pngSignature); err != nil {
		return err
	}

	b := img.Bounds()
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(b.Dy()))
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorTypeRGBA
	// compression, filter and interlace methods stay 0.
	if err := writeChunk(bw, "IHDR", ihdr); err != nil {
		return err
	}

	idat, err := compressRows(img)
	if err != nil {
		return err
	}
	if err := writeChunk(bw, "IDAT", idat); err != nil {
		return err
	}
	if err := writeChunk(bw, "IEND", nil); err != nil {
		return err
	}
	return bw.Flush()
}

func compressRows(img *image.NRGBA) ([]byte, error) {
	b := img.Bounds()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	rowLen := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if _, err := zw.Write([]byte{filterNone}); err != nil {
			return nil, err
		}
		off := img.PixOffset(b.Min.X, y)
		if _, err := zw.Write(img.Pix[off : off+rowLen]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeChunk(w io.Writer, kind string, data []byte) error {
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], kind)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)
	footer := binary.BigEndian.AppendUint32(nil, crc.Sum32())

	for _, part := range [][]byte{header, data, footer} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}
