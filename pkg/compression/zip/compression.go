package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudretro/retrofront/pkg/logger"
)

const Ext = ".zip"

var (
	ErrorNotFound    = errors.New("not found")
	ErrorInvalidName = errors.New("invalid name")
)

type Extractor struct {
	log *logger.Logger
}

func New(log *logger.Logger) Extractor { return Extractor{log: log} }

// Compress compresses the bytes (a single file) with a name specified into a ZIP file (as bytes).
func Compress(data []byte, name string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	z, err := w.Create(name)
	if err != nil {
		return nil, err
	}
	if _, err = z.Write(data); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read reads a single ZIP file from the bytes array.
// It will return un-compressed data and the name of that file.
func Read(zd []byte) ([]byte, string, error) {
	r, err := zip.NewReader(bytes.NewReader(zd), int64(len(zd)))
	if err != nil {
		return nil, "", err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, "", err
		}
		if err := rc.Close(); err != nil {
			return nil, "", err
		}
		return b, f.FileInfo().Name(), nil
	}
	return nil, "", ErrorNotFound
}

func (e Extractor) Extract(src string, dest string) (files []string, err error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return files, err
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		path := filepath.Join(dest, f.Name)

		// negate ZipSlip (http://bit.ly/2MsjAWE)
		if !strings.HasPrefix(path, filepath.Clean(dest)+string(os.PathSeparator)) {
			e.log.Warn().Msgf("%s is an illegal path", path)
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, os.ModePerm); err != nil {
				e.log.Error().Err(err).Msgf("couldn't remake dir %v", path)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			e.log.Error().Err(err).Msgf("couldn't make dir for %v", path)
			continue
		}
		out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			e.log.Error().Err(err).Msgf("couldn't open %v", path)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			e.log.Error().Err(err).Msgf("couldn't read %v", f.Name)
			_ = out.Close()
			continue
		}

		if _, err = io.Copy(out, rc); err != nil {
			e.log.Error().Err(err).Msgf("couldn't extract %v", path)
			_ = out.Close()
			_ = rc.Close()
			continue
		}

		_ = out.Close()
		_ = rc.Close()

		files = append(files, path)
	}
	return files, nil
}
