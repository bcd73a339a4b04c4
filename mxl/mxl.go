// Package mxl reads and writes the compressed MusicXML container: a zip
// archive holding the score plus META-INF/container.xml pointing at it.
package mxl

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/tree"
)

const (
	mimetype      = "application/vnd.recordare.musicxml"
	containerPath = "META-INF/container.xml"
	// DefaultName is the score entry written when Pack is given no name.
	DefaultName = "score.musicxml"
)

// Unpack returns the score document inside an archive. The rootfile named by
// the container wins; without one, the first .musicxml or .xml entry outside
// META-INF is used.
func Unpack(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewMalformed("MXL", err)
	}

	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	if c, ok := files[containerPath]; ok {
		container, err := readEntry(c)
		if err != nil {
			return nil, err
		}
		paths, err := tree.Query(container, "//rootfile/@full-path")
		if err != nil {
			return nil, errors.NewMalformed("MXL", err)
		}
		for _, p := range paths {
			if f, ok := files[p]; ok {
				return readEntry(f)
			}
		}
	}

	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		switch strings.ToLower(path.Ext(f.Name)) {
		case ".musicxml", ".xml":
			return readEntry(f)
		}
	}
	return nil, errors.NewParse("MXL", "", "archive holds no score document")
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.NewMalformed("MXL", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.NewMalformed("MXL", err)
	}
	return data, nil
}

// Pack wraps a score document in an archive. The mimetype entry is stored
// uncompressed and first.
func Pack(score []byte, name string) ([]byte, error) {
	if name == "" {
		name = DefaultName
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(mimetype)); err != nil {
		return nil, err
	}

	if err := addFile(zw, containerPath, []byte(container(name))); err != nil {
		return nil, err
	}
	if err := addFile(zw, name, score); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", name)
	}
	_, err = w.Write(data)
	return err
}

func container(name string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<container>
  <rootfiles>
    <rootfile full-path="%s" media-type="application/vnd.recordare.musicxml+xml"/>
  </rootfiles>
</container>
`, tree.EscapeAttr(name))
}
