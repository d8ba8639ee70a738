package images

import (
	"bytes"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// NormalizeOrientation applies the EXIF orientation tag to JPEG bytes so the
// vision model sees the photo upright. Phones routinely store rotated pixels
// plus an orientation flag, which the model ignores. Returns the input
// unchanged when there is no EXIF data or anything fails to decode; this is
// the single processing pass done on uploaded photos.
func NormalizeOrientation(data []byte) []byte {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return data
	}

	orientation, err := tag.Int(0)
	if err != nil || orientation == 1 {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	switch orientation {
	case 3:
		img = imaging.Rotate180(img)
	case 6:
		img = imaging.Rotate270(img)
	case 8:
		img = imaging.Rotate90(img)
	default:
		return data
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return data
	}
	return buf.Bytes()
}
