package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// WriteOBJ writes mesh as a Wavefront OBJ object called name. When mtl is
// not empty the object references material "terrain" from that library.
func WriteOBJ(w io.Writer, mesh *terrain.Mesh, name, mtl string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# lod %d, %d vertices, %d triangles\n", mesh.LOD, len(mesh.Vertices), mesh.TriangleCount())
	if mtl != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtl)
	}
	fmt.Fprintf(bw, "o %s\n", name)

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range mesh.Vertices {
		// OBJ texture space has v pointing up; texture rows run top down.
		fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], 1-v.TexCoord[1])
	}
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	if mtl != "" {
		fmt.Fprintln(bw, "usemtl terrain")
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// WriteMTL writes a material library with a single material "terrain"
// using texture as its diffuse map.
func WriteMTL(w io.Writer, texture string) error {
	_, err := fmt.Fprintf(w, "newmtl terrain\nKa 1 1 1\nKd 1 1 1\nKs 0 0 0\nmap_Kd %s\n", texture)
	return err
}

// SaveOBJ writes mesh to path. A non-empty texture path also writes a
// material library next to it.
func SaveOBJ(path string, mesh *terrain.Mesh, texture string) error {
	var mtl string
	if texture != "" {
		mtl = trimExt(filepath.Base(path)) + ".mtl"
		mtlPath := filepath.Join(filepath.Dir(path), mtl)
		err := writeFile(mtlPath, func(w io.Writer) error {
			return WriteMTL(w, filepath.Base(texture))
		})
		if err != nil {
			return err
		}
	}

	name := trimExt(filepath.Base(path))
	return writeFile(path, func(w io.Writer) error {
		return WriteOBJ(w, mesh, name, mtl)
	})
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
