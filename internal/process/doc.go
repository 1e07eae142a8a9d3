// Package process runs external Markdown converters in their own process
// group so a cancelled conversion leaves no orphaned children behind.
package process
