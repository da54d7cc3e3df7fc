package export

import (
	"image"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// FileDisplay writes every preview it is shown to Dir. Textures go to
// <Name><ext>; meshes go to <Name>.obj with their texture in
// <Name>_texture<ext> and a material library. Write failures are collected
// and returned by Err.
type FileDisplay struct {
	Dir    string
	Name   string
	Format Format

	log     *zap.Logger
	written []string
	err     error
}

// NewFileDisplay returns a FileDisplay writing to dir.
func NewFileDisplay(dir, name string, format Format, log *zap.Logger) *FileDisplay {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileDisplay{Dir: dir, Name: name, Format: format, log: log}
}

// DrawTexture saves texture.
func (d *FileDisplay) DrawTexture(texture *image.RGBA) {
	d.saveImage(d.path(d.Name+d.Format.Ext()), texture)
}

// DrawMesh saves mesh and its texture.
func (d *FileDisplay) DrawMesh(mesh *terrain.Mesh, texture *image.RGBA) {
	texPath := d.path(d.Name + "_texture" + d.Format.Ext())
	if !d.saveImage(texPath, texture) {
		texPath = ""
	}

	objPath := d.path(d.Name + ".obj")
	if err := SaveOBJ(objPath, mesh, texPath); err != nil {
		d.fail(objPath, err)
		return
	}
	d.done(objPath)
}

func (d *FileDisplay) saveImage(path string, img *image.RGBA) bool {
	if err := SaveImage(path, img); err != nil {
		d.fail(path, err)
		return false
	}
	d.done(path)
	return true
}

func (d *FileDisplay) path(name string) string {
	return filepath.Join(d.Dir, name)
}

func (d *FileDisplay) done(path string) {
	d.written = append(d.written, path)
	d.log.Info("exported", zap.String("path", path))
}

func (d *FileDisplay) fail(path string, err error) {
	d.err = multierr.Append(d.err, err)
	d.log.Error("export failed", zap.String("path", path), zap.Error(err))
}

// Written returns the paths written so far.
func (d *FileDisplay) Written() []string {
	return d.written
}

// Err returns every write error so far combined, or nil.
func (d *FileDisplay) Err() error {
	return d.err
}
