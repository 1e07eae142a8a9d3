package assets

// Names of the embedded stylesheets.
const (
	DefaultStyleName = "default" // built-in and external backends
	GitHubStyleName  = "github"  // remote API backend
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded stylesheet by name.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
