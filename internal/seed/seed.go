package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"product-catalog/internal/model"
)

//go:embed defaults.json
var defaultsJSON []byte

var defaults []model.Product

func init() {
	products, err := Decode(bytes.NewReader(defaultsJSON))
	if err != nil {
		panic(fmt.Sprintf("seed: invalid embedded defaults: %v", err))
	}
	defaults = products
}

// Loader defines the interface for loading a seed product set.
type Loader interface {
	// Load reads a JSON product array (optionally gzipped) from path.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Default returns a copy of the built-in seed set.
func Default() []model.Product {
	out := make([]model.Product, len(defaults))
	copy(out, defaults)
	return out
}

// Decode parses a JSON product array, transparently gunzipping the input when
// it starts with the gzip magic bytes. Every product must have a unique
// positive ID and satisfy the field constraints.
func Decode(r io.Reader) ([]model.Product, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var products []model.Product
	if err := json.NewDecoder(src).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode seed products: %w", err)
	}

	seen := make(map[int64]struct{}, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("seed product %d: id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seed product %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		if _, err := model.ValidateDraft(model.CreateProductRequest{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
		}); err != nil {
			return nil, fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}

	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
