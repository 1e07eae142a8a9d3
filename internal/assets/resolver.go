package assets

import "errors"

// AssetResolver tries a user style directory first and falls back to the
// embedded stylesheets when a name is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no style directory configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty styleDir means embedded stylesheets only.
// Returns error if styleDir is set but invalid.
func NewAssetResolver(styleDir string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if styleDir != "" {
		fsLoader, err := NewFilesystemLoader(styleDir)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a stylesheet, user directory first.
// Only ErrStyleNotFound falls through to the embedded set; validation and
// I/O errors from the user directory are returned as is.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// HasCustomLoader returns true if a style directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
