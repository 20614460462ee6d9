package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ImageFields covers every image attribute the catalog data carries.
// Records come from several upstream datasets and populate different
// subsets of these columns, so URL resolution walks them in priority
// order instead of trusting any single field.
type ImageFields struct {
	ImageURL     string `json:"image_url,omitempty"`
	ImgURL       string `json:"img_url,omitempty"`
	Image        string `json:"image,omitempty"`
	GCPPublicURL string `json:"gcp_public_url,omitempty"`
	GCPImageURL  string `json:"gcp_image_url,omitempty"`
	GCPBucket    string `json:"gcp_bucket,omitempty"`
	GCPPath      string `json:"gcp_path,omitempty"`
}

// Resolve returns the best available image URL, or a deterministic
// placeholder derived from the record's id and name.
func (f ImageFields) Resolve(id, name string) string {
	if f.ImageURL != "" {
		return f.ImageURL
	}
	if f.ImgURL != "" {
		return f.ImgURL
	}
	if f.Image != "" {
		return f.Image
	}
	if f.GCPPublicURL != "" {
		return f.GCPPublicURL
	}
	if f.GCPImageURL != "" {
		if strings.HasPrefix(f.GCPImageURL, "http") {
			return f.GCPImageURL
		}
		if f.GCPBucket != "" && f.GCPPath != "" {
			return composeGCSURL(f.GCPBucket, f.GCPPath)
		}
		if f.GCPBucket != "" {
			return composeGCSURL(f.GCPBucket, f.GCPImageURL)
		}
	}
	if f.GCPBucket != "" && f.GCPPath != "" {
		return composeGCSURL(f.GCPBucket, f.GCPPath)
	}
	return DefaultImageURL(id, name)
}

func composeGCSURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.TrimPrefix(path, "/"))
}

// DefaultImageURL picks one of four stock food images, stable for a
// given id and name so the same item always renders the same picture.
func DefaultImageURL(id, name string) string {
	hash := int64(0)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		hash = n
	} else {
		for _, r := range id {
			hash += int64(r)
		}
	}
	for _, r := range name {
		hash += int64(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return fmt.Sprintf("/random_food/food%d.png", hash%4+1)
}
