package scene

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/matzehuels/scenetree/pkg/errors"
)

// Extensions lists the file extensions [Import] accepts.
var Extensions = []string{".gltf", ".glb"}

// Document is an imported glTF document together with the path it came from.
type Document struct {
	Path string
	GLTF *gltf.Document
}

// Name returns the document's base file name, or "<unnamed file>" when the
// document was not read from a file.
func (d *Document) Name() string {
	if d == nil || d.Path == "" {
		return "<unnamed file>"
	}
	return filepath.Base(d.Path)
}

// Supported reports whether path has an extension [Import] accepts.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Import opens, decodes and validates the glTF document at path.
//
// Buffer and image payloads referenced by the document are loaded relative
// to its directory. See the package documentation for the error codes.
func Import(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if !Supported(path) {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported file type %q (want %s)", filepath.Ext(path), strings.Join(Extensions, " or "))
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}

	g, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", filepath.Base(path))
	}
	if err := Validate(g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "validate %s", filepath.Base(path))
	}
	return &Document{Path: path, GLTF: g}, nil
}
