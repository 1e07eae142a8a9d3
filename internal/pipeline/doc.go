// Package pipeline implements the Markdown preview pipeline.
//
// Stages, in the order a conversion runs them:
//   - Markdown preprocessing (line endings, front matter, references, CriticMarkup)
//   - Markdown to HTML through a backend (goldmark, the GitHub API, or an
//     external program)
//   - header id injection
//   - link rewriting to absolute or destination-relative form
//   - base64 image embedding
//   - attribute stripping for simplified output
//   - page assembly (meta, stylesheets, scripts, title, template)
//
// The HTML stages share one tokenizer that recognizes comments and start
// tags only. Everything else is copied byte for byte, so a stage that finds
// nothing to change returns its input unchanged. No stage fails: a reference
// that cannot be resolved is left as written.
package pipeline
