package firmware

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HexExt is the extension of Intel HEX images.
const HexExt = ".hex"

// ErrNoHexImage means an archive holds no .hex member.
var ErrNoHexImage = errors.New("no .hex image in archive")

// Image is a .hex file ready for flashing.
type Image struct {
	// Path is the .hex file on disk
	Path string

	// Source is the file Open was called with
	Source string

	// Member is the archive member the image was extracted from, empty for
	// plain .hex files
	Member string
}

// Extracted reports whether the image was extracted to a temporary file.
func (img *Image) Extracted() bool {
	return img.Member != ""
}

// Close removes the temporary file of an extracted image. It is a no-op for
// plain .hex files.
func (img *Image) Close() error {
	if !img.Extracted() {
		return nil
	}
	if err := os.Remove(img.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove extracted image: %w", err)
	}
	return nil
}

// Open returns the .hex image at path. Zip archives are recognised by
// content, not by extension; the first member ending in .hex (any case) is
// extracted to a temporary file.
func Open(path string) (*Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}

	zr, err := zip.OpenReader(path)
	if errors.Is(err, zip.ErrFormat) {
		return &Image{Path: path, Source: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), HexExt) {
			continue
		}
		tmp, err := extract(f)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		return &Image{Path: tmp, Source: path, Member: f.Name}, nil
	}

	return nil, fmt.Errorf("%s: %w", path, ErrNoHexImage)
}

func extract(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	out, err := os.CreateTemp("", "arduboot-*"+HexExt)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}
