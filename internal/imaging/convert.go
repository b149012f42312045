package imaging

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/specialistvlad/assetpipe/internal/ctxlog"

	// Register decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ConvertToOpaqueRGBA decodes inputPath, replaces its alpha channel with a
// fully opaque mask while keeping the red, green and blue channels, and
// writes the result to outputPath as PNG.
func ConvertToOpaqueRGBA(ctx context.Context, inputPath, outputPath string) error {
	logger := ctxlog.FromContext(ctx).With("input", inputPath, "output", outputPath)

	src, format, err := decode(inputPath)
	if err != nil {
		return err
	}
	logger.Debug("Image decoded.", "format", format, "bounds", src.Bounds().String())

	dst := Opaque(src)

	if err := writePNG(outputPath, dst); err != nil {
		return err
	}
	logger.Info("Wrote opaque RGBA image.", "width", dst.Bounds().Dx(), "height", dst.Bounds().Dy())
	return nil
}

// Opaque returns an NRGBA copy of img with every alpha sample set to 255.
// Color channels are taken in non-premultiplied form, so a translucent pixel
// keeps its stored RGB values.
func Opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	mask := opaqueMask(b)

	if src, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)], src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)])
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
			}
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)+3] = mask.Pix[mask.PixOffset(x, y)]
		}
	}
	return dst
}

// opaqueMask is a single-channel image at full opacity.
func opaqueMask(b image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(b)
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return mask
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ImageError{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &ImageError{Op: OpDecode, Path: path, Err: err}
	}
	return img, format, nil
}

// writePNG encodes into a temporary sibling and renames it over path, so a
// failed encode leaves no partial file behind.
func writePNG(path string, img *image.NRGBA) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &ImageError{Op: OpWrite, Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if err := encodeRGBA(tmp, img); err != nil {
		tmp.Close()
		cleanup()
		return &ImageError{Op: OpWrite, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &ImageError{Op: OpWrite, Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return &ImageError{Op: OpWrite, Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &ImageError{Op: OpWrite, Path: path, Err: err}
	}
	return nil
}

// DefaultOutputPath names the converted file next to the input:
// "pic/T_EYE_NORMALS.png" becomes "pic/T_EYE_NORMALS_RGBA.png".
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := inputPath[:len(inputPath)-len(ext)]
	return stem + "_RGBA.png"
}
