package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style name cannot address a file.
// Empty names and names containing separators or dots are rejected.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\.:"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
