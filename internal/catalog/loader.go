package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"storefront/internal/domain/model"

	"gopkg.in/yaml.v3"
)

//go:embed seed/games.yaml
var seedCatalog []byte

// Load はpathのカタログ（YAML/JSON）を読む。pathが空なら埋め込みのシードを使う。
func Load(path string) (*Store, error) {
	if path == "" {
		return Parse(seedCatalog)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse はYAML（JSONも可）の商品配列から Store を作る。
func Parse(b []byte) (*Store, error) {
	var items []model.CatalogItem
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}
	return NewStore(items)
}
