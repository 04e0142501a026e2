// Package exemplos serves the educational example catalog. The default
// catalog ships embedded; deployments can point EXEMPLOS_FILE at their own.
package exemplos

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed exemplos.yaml
var padrao []byte

type Catalog struct {
	Categorias map[string][]string `yaml:"categorias"`
}

// Load reads the catalog from path, or the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	data := padrao
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading examples file: %w", err)
		}
		data = b
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing examples file: %w", err)
	}
	if len(c.Categorias) == 0 {
		return nil, fmt.Errorf("examples file has no categories")
	}
	return &c, nil
}

// Default returns the embedded catalog. The embedded file is part of the
// build, so a failure here is a programmer error.
func Default() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Total() int {
	total := 0
	for _, lista := range c.Categorias {
		total += len(lista)
	}
	return total
}
