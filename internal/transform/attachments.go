package transform

import "encoding/base64"

// Image is one photo attachment as handed over by the caller.
type Image struct {
	Content  []byte
	Note     string
	Category string
}

// Photo is the document form of an Image.
type Photo struct {
	Category string `json:"category"`
	Note     string `json:"note"`
	Content  string `json:"content"`
}

// EncodePhotos base64-encodes every image, keeping input order. The result
// is never nil so that an empty list is rendered as [].
func EncodePhotos(images []Image) []Photo {
	photos := make([]Photo, 0, len(images))
	for _, img := range images {
		photos = append(photos, Photo{
			Category: img.Category,
			Note:     img.Note,
			Content:  base64.StdEncoding.EncodeToString(img.Content),
		})
	}
	return photos
}
