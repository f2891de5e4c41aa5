package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/validation"
)

//go:embed data/catalog.json
var defaultCatalogJSON []byte

//go:embed data/catalog.schema.json
var catalogSchemaJSON []byte

// Document is the JSON representation of a catalog file
type Document struct {
	Version     string         `json:"version"`
	Description string         `json:"description,omitempty"`
	Tiers       []TierDocument `json:"tiers"`
}

// TierDocument is one tier with its phones
type TierDocument struct {
	Rarity        int             `json:"rarity"`
	Name          string          `json:"name"`
	Weight        float64         `json:"weight"`
	UpgradeChance float64         `json:"upgrade_chance"`
	Items         []EntryDocument `json:"items"`
}

// EntryDocument is one phone in a tier
type EntryDocument struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

var (
	schemaOnce      sync.Once
	schemaValidator validation.SchemaValidator
	schemaErr       error
)

func validator() (validation.SchemaValidator, error) {
	schemaOnce.Do(func() {
		schemaValidator = validation.NewSchemaValidator()
		schemaErr = schemaValidator.Register(SchemaName, catalogSchemaJSON)
	})
	return schemaValidator, schemaErr
}

// Parse validates data against the catalog schema and the semantic rules,
// and builds a Table
func Parse(data []byte) (*Table, error) {
	v, err := validator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaInvalid, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	return doc.Table()
}

// Table converts the document into a validated Table
func (d Document) Table() (*Table, error) {
	tiers := make([]Tier, 0, len(d.Tiers))
	var entries []Entry
	for _, td := range d.Tiers {
		r := domain.Rarity(td.Rarity)
		tiers = append(tiers, Tier{
			Rarity:        r,
			Name:          td.Name,
			Weight:        td.Weight,
			UpgradeChance: td.UpgradeChance,
		})
		for _, ed := range td.Items {
			entries = append(entries, Entry{Rarity: r, Name: ed.Name, Price: ed.Price})
		}
	}
	return NewTable(tiers, entries)
}

// Default returns the built-in catalog. It panics if the embedded document is
// invalid, which is a build defect.
func Default() *Table {
	t, err := Parse(defaultCatalogJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return t
}

// Load reads the catalog at path, or the built-in catalog when path is empty.
// Tiers with no entries are logged since draws landing on them fail.
func Load(ctx context.Context, path string) (*Table, error) {
	data := defaultCatalogJSON
	source := "embedded"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
		}
		data = raw
		source = path
	}

	t, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	entryCount := 0
	for _, tier := range t.tiers {
		n := len(t.entries[tier.Rarity])
		if n == 0 {
			log.Warn(LogMsgEmptyRarityPool, "rarity", tier.Rarity, "name", tier.Name)
		}
		entryCount += n
	}
	log.Info(LogMsgCatalogLoaded, "source", source, "tiers", len(t.tiers), "entries", entryCount)

	return t, nil
}
