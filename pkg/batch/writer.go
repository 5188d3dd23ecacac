package batch

import (
	"os"

	"github.com/activecm/wfpreprocess/pkg/features"
)

// writeVector serializes a feature vector to its artifact file. A failed
// write removes the partial file.
func writeVector(path string, vec features.Vector) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := vec.WriteTo(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
