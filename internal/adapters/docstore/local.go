// Package docstore implements ports.DocumentSource over the local
// filesystem. It walks configured directories, decodes each file through
// an extension-keyed reader table, and yields documents lazily. Format
// internals stay behind ports.DocumentReader: plain text and markdown are
// built in, richer formats (PDF, DOCX, PPTX) plug in from outside.
package docstore

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/ports"
)

// textReader decodes a stream as UTF-8 text.
type textReader struct{}

func (textReader) Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Dir is one watched directory with its filters.
type Dir struct {
	Path      string
	Include   []string // filename globs; empty means "*"
	Exclude   []string // filename globs
	Recursive bool
}

// LocalSource yields documents from local directories. The file listing is
// recomputed on every Documents() call, so each call starts a fresh pass.
type LocalSource struct {
	dirs    []Dir
	readers map[string]ports.DocumentReader // extension (no dot) -> reader
}

// NewLocalSource creates a source over the given directories. Plain-text
// extensions (txt, text, md) are pre-registered.
func NewLocalSource(dirs ...Dir) *LocalSource {
	s := &LocalSource{
		dirs:    dirs,
		readers: make(map[string]ports.DocumentReader),
	}
	for _, ext := range []string{"txt", "text", "md"} {
		s.readers[ext] = textReader{}
	}
	return s
}

// AddDir appends a directory to the source.
func (s *LocalSource) AddDir(d Dir) { s.dirs = append(s.dirs, d) }

// RegisterReader plugs in a reader for one file extension (without dot),
// replacing any existing one.
func (s *LocalSource) RegisterReader(ext string, r ports.DocumentReader) {
	s.readers[strings.ToLower(strings.TrimPrefix(ext, "."))] = r
}

// Documents lists the files once, then yields them one at a time.
func (s *LocalSource) Documents() ports.DocumentIterator {
	return &iterator{source: s, files: s.listFiles()}
}

// listFiles walks every directory applying include/exclude globs.
// Unwalkable paths are logged and skipped.
func (s *LocalSource) listFiles() []string {
	var files []string
	for _, d := range s.dirs {
		root := d.Path
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("skipping unwalkable path")
				return nil
			}
			if entry.IsDir() {
				if !d.Recursive && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if s.accept(d, entry.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			log.Warn().Str("dir", root).Err(err).Msg("directory walk failed")
		}
	}
	return files
}

func (s *LocalSource) accept(d Dir, name string) bool {
	for _, glob := range d.Exclude {
		if ok, _ := filepath.Match(glob, name); ok {
			return false
		}
	}
	if len(d.Include) == 0 {
		return true
	}
	for _, glob := range d.Include {
		if ok, _ := filepath.Match(glob, name); ok {
			return true
		}
	}
	return false
}

// ReadDocument decodes one file into a document. Returns nil (never an
// error) for unsupported types, unreadable files, and empty files; all
// three are logged and skipped.
func (s *LocalSource) ReadDocument(path string) *ports.Document {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	reader, ok := s.readers[ext]
	if !ok {
		log.Debug().Str("file", path).Str("ext", ext).Msg("no reader for file type")
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("file could not be opened")
		return nil
	}
	defer f.Close()

	text, err := reader.Read(f)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("file could not be decoded")
		return nil
	}
	if len(text) == 0 {
		log.Info().Str("file", path).Msg("ignoring empty file")
		return nil
	}
	return ports.NewDocument(path, text)
}

type iterator struct {
	source *LocalSource
	files  []string
	next   int
}

func (it *iterator) Next() (*ports.Document, bool) {
	for it.next < len(it.files) {
		path := it.files[it.next]
		it.next++
		if doc := it.source.ReadDocument(path); doc != nil {
			return doc, true
		}
	}
	return nil, false
}
