package config

import (
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Paths struct {
	ConfigFile *string
}

func (p *Paths) setDefaults() {
	p.ConfigFile = gosettings.DefaultPointer(p.ConfigFile, "./data/config.json")
}

func (p Paths) Validate() (err error) {
	return nil
}

func (p Paths) String() string {
	return p.toLinesNode().String()
}

func (p Paths) toLinesNode() *gotree.Node {
	node := gotree.New("Paths")
	node.Appendf("Config file: %s", *p.ConfigFile)
	return node
}

func (p *Paths) read(r *reader.Reader) {
	p.ConfigFile = r.Get("CONFIG_FILE", reader.ForceLowercase(false))
}
