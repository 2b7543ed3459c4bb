// Package uriutil converts between file:// URIs and file system paths.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI returns the file:// URI of path, made absolute. Segments are
// percent-encoded; Windows drive paths get three slashes and UNC paths
// carry the server as the host.
func PathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if runtime.GOOS == "windows" && strings.HasPrefix(abs, `\\`) {
		host, rest, _ := strings.Cut(filepath.ToSlash(strings.TrimPrefix(abs, `\\`)), "/")
		return "file://" + host + "/" + escapeSegments(rest)
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + escapeSegments(slashed)
}

func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// URIToPath returns the file system path of a file:// URI. Anything that
// does not parse as a file URI is treated leniently as a path with an
// optional file:// prefix.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return fromSlash(strings.TrimPrefix(uri, "file://"))
	}
	if u.Host != "" && u.Host != "localhost" {
		if runtime.GOOS == "windows" {
			return `\\` + u.Host + filepath.FromSlash(u.Path)
		}
		return u.Host + u.Path
	}
	return fromSlash(u.Path)
}

// fromSlash drops the slash before a drive letter and converts separators.
func fromSlash(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
