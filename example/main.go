// FILE: lixenwraith/confstore/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/confstore"
)

// AppConfig is the typed view of the "app" document.
type AppConfig struct {
	Server struct {
		Host     string        `json:"host"`
		Port     int64         `json:"port"`
		Timeout  time.Duration `json:"timeout"`
		LogLevel string        `json:"log_level" confstore:"loglevel"`
	} `json:"server"`
	FeatureFlags map[string]bool `json:"feature_flags"`
}

func main() {
	dir, err := os.MkdirTemp("", "confstore-example-")
	if err != nil {
		log.Fatalf("❌ Failed to create config directory: %v", err)
	}
	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.RemoveAll(dir)
	}()

	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a document that uses a legacy key name.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating initial document...")

	store, err := confstore.NewBuilder().WithDir(dir).Build()
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}

	_, err = store.Load("app")
	if errors.Is(err, confstore.ErrFileMissing) {
		log.Printf("   (Load before save fails as expected: %v)", err)
	}

	initial := confstore.Document{
		"server": map[string]any{
			"host":     "localhost",
			"port":     8080,
			"timeout":  "5s",
			"loglevel": "info",
		},
		"feature_flags": map[string]any{"enable_metrics": true},
	}
	if err := store.Save("app", initial); err != nil {
		log.Fatalf("❌ Failed to save initial document: %v", err)
	}
	log.Printf("✅ Initial document saved to %s.", store.Path("app"))

	// =========================================================================
	// PART 2: VALIDATION
	// An explicit spec with an alias, then a spec derived from AppConfig.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Validating...")

	spec := confstore.Spec{
		{Key: "server", Want: confstore.Nested(confstore.Spec{
			{Key: "host", Want: confstore.Type("string")},
			{Key: "port", Want: confstore.Check(func(v any) error {
				if p, ok := v.(int64); !ok || p < 1 || p > 65535 {
					return fmt.Errorf("port %v out of range", v)
				}
				return nil
			})},
			{Key: "log_level|loglevel", Want: confstore.Type("string")},
		})},
	}

	doc, err := store.LoadValidated("app", spec)
	if err != nil {
		log.Fatalf("❌ Validation failed: %v", err)
	}
	level, _ := doc.Lookup("server.log_level")
	log.Printf("✅ Valid. 'loglevel' was renamed to 'log_level' (value %q).", level)

	broken := doc.Clone()
	broken.Delete("server.host")
	if _, err := confstore.Validate(spec, broken); err != nil {
		var schemaErr *confstore.SchemaError
		if errors.As(err, &schemaErr) {
			log.Printf("   (Broken copy rejected at %s: %v)", schemaErr.Path(), err)
		}
	}

	var cfg AppConfig
	if err := store.LoadInto("app", &cfg); err != nil {
		log.Fatalf("❌ LoadInto failed: %v", err)
	}
	log.Printf("✅ Typed config: %s:%d timeout=%s", cfg.Server.Host, cfg.Server.Port, cfg.Server.Timeout)

	// =========================================================================
	// PART 3: CONCURRENT ACCESS
	// Writers and readers hammer the same file; every read is a whole document.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Concurrent saves and loads...")

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				d := doc.Clone()
				d.Set("server.port", int64(9000+id*100+j))
				if err := store.Save("app", d); err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := store.LoadValidated("app", spec); err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if failures > 0 {
		log.Fatalf("❌ %d concurrent operations failed", failures)
	}
	final, _ := store.Load("app")
	port, _ := final.Lookup("server.port")
	log.Printf("✅ No torn reads. Final port: %v", port)
}
