package web

import (
	"github.com/oshifan/hocgsim/internal/loadout"
	"gopkg.in/yaml.v3"
)

func parseLoadoutYAML(data []byte) (loadout.File, error) {
	var f loadout.File
	err := yaml.Unmarshal(data, &f)
	return f, err
}
