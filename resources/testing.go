package resources

import (
	"testing"

	"github.com/activecm/wfpreprocess/config"
)

// InitTestResources creates a resource bundle from the hard coded testing config
func InitTestResources(t *testing.T) *Resources {
	conf, err := config.LoadTestingConfig()
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewResources(conf)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
