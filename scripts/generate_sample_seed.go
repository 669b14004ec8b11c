//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"product-catalog/internal/seed"
)

// generateSampleSeed writes the built-in product set as plain and gzipped
// JSON seed files, then decodes them back to check they load.
// Usage: go run scripts/generate_sample_seed.go
func main() {
	dataDir := "data/seed"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := seed.Default()

	payload, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode products: %v", err)
	}

	plainPath := filepath.Join(dataDir, "products.json")
	if err := os.WriteFile(plainPath, payload, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", plainPath, err)
	}

	gzPath := filepath.Join(dataDir, "products.json.gz")
	if err := writeGzip(gzPath, payload); err != nil {
		log.Fatalf("Failed to write %s: %v", gzPath, err)
	}

	for _, path := range []string{plainPath, gzPath} {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		decoded, err := seed.Decode(f)
		f.Close()
		if err != nil {
			log.Fatalf("Generated file %s does not load: %v", path, err)
		}
		fmt.Printf("Created %s with %d products\n", path, len(decoded))
	}

	fmt.Println("\nSet CATALOG_SEED_FILE to either file to use it as the local seed.")
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if _, err := gw.Write(data); err != nil {
		return err
	}
	return gw.Close()
}
