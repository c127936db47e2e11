package geofy

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bep/imagemeta"
	_ "golang.org/x/image/webp"
)

// ImageBuffer holds uploaded image bytes together with their decoded,
// orientation-corrected pixels. Created once per inference call and
// discarded afterwards.
type ImageBuffer struct {
	Data     []byte
	Pixels   image.Image
	Width    int
	Height   int
	Channels int  // always 3 (RGB)
	Oriented bool // EXIF orientation applied
}

// DecodeImage normalizes raw uploaded bytes into an ImageBuffer.
//
// Truncated or partially corrupt uploads are retried once from a freshly
// reopened reader before giving up. The EXIF Orientation tag, when
// present, is applied so downstream detectors always see upright pixels.
func DecodeImage(data []byte) (*ImageBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("geofy: empty image data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Second attempt from a reopened buffer. Some decoders leave
		// the first reader in a bad state on truncated input.
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("geofy: decode image: %w", err)
		}
	}

	oriented := false
	if o := readOrientation(data); o > 1 {
		img = applyOrientation(img, o)
		oriented = true
	}

	b := img.Bounds()
	return &ImageBuffer{
		Data:     data,
		Pixels:   img,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: 3,
		Oriented: oriented,
	}, nil
}

// readOrientation pulls the EXIF Orientation tag (1-8) from raw bytes.
// Returns 0 when absent or unreadable.
func readOrientation(data []byte) int {
	orientation := 0
	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "Orientation"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if v, ok := tagValueInt(ti.Value); ok {
				orientation = v
			}
			return nil
		},
	})
	if err != nil {
		return 0
	}
	return orientation
}

// applyOrientation maps pixels according to an EXIF orientation value
// (2-8; 1 is the identity and never reaches here).
func applyOrientation(src image.Image, orientation int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.NRGBA
	switch orientation {
	case 5, 6, 7, 8: // rotated 90 or 270: dimensions swap
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
	default:
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			switch orientation {
			case 2: // mirror horizontal
				dst.Set(w-1-x, y, c)
			case 3: // rotate 180
				dst.Set(w-1-x, h-1-y, c)
			case 4: // mirror vertical
				dst.Set(x, h-1-y, c)
			case 5: // mirror horizontal + rotate 270 CW
				dst.Set(y, x, c)
			case 6: // rotate 90 CW
				dst.Set(h-1-y, x, c)
			case 7: // mirror horizontal + rotate 90 CW
				dst.Set(h-1-y, w-1-x, c)
			case 8: // rotate 270 CW
				dst.Set(y, w-1-x, c)
			default:
				dst.Set(x, y, c)
			}
		}
	}
	return dst
}

// tagValueInt coerces a numeric tag value to int. EXIF decoders may
// surface the same tag as any integer width or a float.
func tagValueInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int8:
		return int(val), true
	case int16:
		return int(val), true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case uint8:
		return int(val), true
	case uint16:
		return int(val), true
	case uint32:
		return int(val), true
	case uint64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}
