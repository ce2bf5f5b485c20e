package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

var modelExt = map[string]string{
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
	".usdz": "model/vnd.usdz+zip",
}

var thumbnailExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateModelExtension returns the content type for an AR model asset.
func ValidateModelExtension(filename string) (string, error) {
	return lookupExt(filename, modelExt)
}

// ValidateThumbnailExtension returns the content type for a dish thumbnail.
func ValidateThumbnailExtension(filename string) (string, error) {
	return lookupExt(filename, thumbnailExt)
}

func lookupExt(filename string, allowed map[string]string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", errors.New("file extension missing")
	}

	contentType, ok := allowed[ext]
	if !ok {
		return "", errors.New("file type not allowed")
	}

	return contentType, nil
}
