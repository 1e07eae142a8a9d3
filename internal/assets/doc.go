// Package assets provides the stylesheets bundled with the preview.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - stylesheets compiled into the binary
//	    ├── FilesystemLoader  - stylesheets from a user directory
//	    └── AssetResolver     - user directory first, embedded as fallback
//
// Two stylesheets are embedded: "default", used with the built-in and
// external backends, and "github", matching the HTML returned by the GitHub
// Markdown API. A user directory holding {name}.css overrides either one
// and may add new names.
//
// # Security
//
// Style names are validated so that they cannot name a path. The
// FilesystemLoader resolves symlinks and refuses files outside its directory.
package assets
