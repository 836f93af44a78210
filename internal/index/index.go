// Package index classifies files by media type and builds the flat work
// list for a compression run.
package index

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// MediaType is the coarse media category derived from a file extension.
// The ordering (Image < Audio < Video) is used to group same-type files
// into contiguous batches.
type MediaType int

const (
	Image MediaType = iota
	Audio
	Video
)

// String returns the human-readable name of the media type.
func (m MediaType) String() string {
	switch m {
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	}
	return "unknown"
}

// Extensions is the standard mapping of lowercase file extensions
// (without dot) to media types. Files whose extension is absent from the
// mapping are excluded from the index entirely.
var Extensions = map[string]MediaType{
	"gif":  Image,
	"jpg":  Image,
	"jpeg": Image,
	"png":  Image,
	"bmp":  Image,
	"webp": Image,
	"avif": Image,

	"mp4": Video,
	"avi": Video,
	"mov": Video,
	"flv": Video,
	"mkv": Video,

	"mp3":  Audio,
	"wav":  Audio,
	"ogg":  Audio,
	"flac": Audio,
	"opus": Audio,
	"m4a":  Audio,
	"webm": Audio,
}

// Entry is one indexed file. Entries are immutable once created and are
// consumed exactly once when a job is dispatched.
type Entry struct {
	Path string
	Type MediaType
}

// Scan walks root recursively and returns an entry for every regular file
// whose lowercase extension appears in exts. Classification is
// case-insensitive; files without an extension are never indexed. The
// result is sorted by media type, then path, so same-type files are
// processed in contiguous, deterministic order. Any directory read error
// aborts the scan.
func Scan(root string, exts map[string]MediaType) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if ext == "" {
			return nil
		}
		if mt, ok := exts[ext]; ok {
			entries = append(entries, Entry{Path: path, Type: mt})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type < entries[j].Type
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
