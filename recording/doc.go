// Package recording accumulates meshes produced outside a generation and
// exports them as a single self-contained VectorImage.
//
// # Basic Usage
//
//	rec := recording.NewRecorder()
//	rec.Append(strokeMesh)
//	rec.Append(fillMesh)
//
//	img, err := rec.Export()
//	if err != nil {
//	    return err
//	}
//	data, _ := img.MarshalBinary()
//
// Export concatenates the meshes in the order they were appended, rebases
// their indices and moves every vertex so that the bounding box of the
// recording starts at the origin.
package recording
