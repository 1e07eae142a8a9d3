// Package mdpreview converts Markdown documents to previewable HTML.
//
// # Quick Start
//
//	conv, err := mdpreview.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdpreview.Input{
//	    Markdown:   content,
//	    SourcePath: "/docs/readme.md",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("/docs/readme.html", result.HTML, 0o644)
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line endings, YAML front matter, appended
//     references, CriticMarkup accept/reject)
//  2. Markdown to HTML through a Backend: BuiltIn (goldmark), RemoteAPI
//     (GitHub Markdown API) or ExternalBinary (any program on a pipe)
//  3. HTML post-processing: header ids, absolute and relative rewriting of
//     img/a/link/script references, base64 image embedding, attribute
//     stripping for simple HTML
//  4. Page assembly: stylesheets, scripts, meta tags and title, in the
//     default document or a custom template
//
// Post-processing never fails: references that are URLs, fragments, missing
// files or unreadable images are left as written, and HTML comments pass
// through untouched.
//
// # Configuration
//
//	conv, err := mdpreview.NewConverter(
//	    mdpreview.WithBackend(mdpreview.RemoteAPI("gfm", token)),
//	    mdpreview.WithPostProcess(mdpreview.PostProcess{
//	        ImagePaths: mdpreview.PathBase64,
//	        FilePaths:  mdpreview.PathRelative,
//	        HeaderIDs:  true,
//	    }),
//	    mdpreview.WithPreprocess(mdpreview.Preprocess{
//	        StripFrontMatter: true,
//	        Critic:           mdpreview.CriticAccept,
//	    }),
//	)
//
// A Converter is safe for concurrent use by multiple goroutines.
//
// # Error Handling
//
// Backend failures wrap sentinel errors checkable with errors.Is:
//
//	if errors.Is(err, mdpreview.ErrRemoteRateLimit) {
//	    // retry later or switch to mdpreview.BuiltIn()
//	}
package mdpreview
