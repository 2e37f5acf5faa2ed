package confstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpecFor tests deriving specs from struct tags
func TestSpecFor(t *testing.T) {
	type Database struct {
		Host string `json:"host"`
		Port uint16 `json:"port"`
	}

	type Config struct {
		Name     string            `json:"name"`
		Debug    bool              `json:"debug"`
		Ratio    float64           `json:"ratio"`
		Timeout  time.Duration     `json:"timeout"`
		Started  time.Time         `json:"started"`
		Tags     []string          `json:"tags"`
		Labels   map[string]string `json:"labels"`
		Extra    any               `json:"extra"`
		DB       Database          `json:"db" confstore:"database|store"`
		Optional string            `json:"optional,omitempty"`
		Pointer  *Database         `json:"pointer"`
		Skipped  string            `json:"-"`
		Ignored  string            `json:"ignored" confstore:"-"`
		NoTag    int
		private  string
	}

	spec, err := SpecFor(&Config{})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"name", "debug", "ratio", "timeout", "started", "tags", "labels", "extra", "db", "NoTag"},
		spec.Keys())
	assert.Equal(t, "db|database|store", spec[8].Key)

	valid := Document{
		"name":    "svc",
		"debug":   false,
		"ratio":   int64(1),
		"timeout": "1m",
		"started": "2024-01-02T03:04:05Z",
		"tags":    []any{"a"},
		"labels":  map[string]any{"k": "v"},
		"extra":   nil,
		"store":   map[string]any{"host": "h", "port": int64(5432)},
		"NoTag":   int64(3),
	}

	t.Run("AcceptsValid", func(t *testing.T) {
		doc := valid.Clone()
		_, err := Validate(spec, doc)
		require.NoError(t, err)
		assert.Contains(t, doc, "db")

		var cfg Config
		require.NoError(t, doc.Decode(&cfg))
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Equal(t, uint16(5432), cfg.DB.Port)
		assert.Equal(t, 1.0, cfg.Ratio)
		assert.Equal(t, 2024, cfg.Started.Year())
	})

	t.Run("RejectsWrongKinds", func(t *testing.T) {
		cases := map[string]any{
			"ratio":   "high",
			"timeout": true,
			"debug":   "yes",
			"tags":    "a,b",
		}
		for key, value := range cases {
			doc := valid.Clone()
			doc[key] = value
			_, err := Validate(spec, doc)
			assert.Error(t, err, key)
		}
	})

	t.Run("NestedMissing", func(t *testing.T) {
		doc := valid.Clone()
		doc["store"] = map[string]any{"host": "h"}
		_, err := Validate(spec, doc)
		se := schemaError(t, err)
		assert.Equal(t, "root->db", se.Context)
		assert.Equal(t, "port", se.Key)
	})

	t.Run("InvalidTargets", func(t *testing.T) {
		_, err := SpecFor(42)
		assert.Error(t, err)

		var nilPtr *Config
		_, err = SpecFor(nilPtr)
		assert.Error(t, err)

		_, err = SpecFor(struct {
			C chan int `json:"c"`
		}{})
		assert.Error(t, err)
	})
}
