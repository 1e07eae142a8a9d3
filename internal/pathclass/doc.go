// Package pathclass decides what a link target found in an HTML attribute
// refers to: a remote URL, a fragment-only reference, or a local filesystem
// path (absolute or relative).
//
// All platform-specific path syntax lives here. Windows targets understand
// drive letters (C:/docs), file://C:/ URLs and UNC shares (//server/share);
// POSIX targets understand rooted paths and file:// URLs. Every other package
// calls into pathclass and never inspects the platform itself.
//
// Paths handled by this package use forward slashes regardless of platform.
package pathclass
