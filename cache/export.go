package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ExportFormat is the on-disk shape of an exported translation memory.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is one remembered translation.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExportableCache is a memory whose entries can be enumerated.
type ExportableCache interface {
	TranslationMemory
	Entries() map[string]string
}

// Exporter writes memory contents to JSON.
type Exporter struct {
	memory ExportableCache
}

// NewExporter creates an exporter for the given memory.
func NewExporter(memory ExportableCache) *Exporter {
	return &Exporter{memory: memory}
}

// Export serializes all non-expired entries.
func (e *Exporter) Export(metadata map[string]string) ([]byte, error) {
	entries := e.memory.Entries()

	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]ExportEntry, 0, len(entries)),
		Metadata:   metadata,
	}

	for key, value := range entries {
		export.Entries = append(export.Entries, ExportEntry{Key: key, Value: value})
	}

	return json.MarshalIndent(export, "", "  ")
}

// ExportToFile writes the export to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	data, err := e.Export(metadata)
	if err != nil {
		return fmt.Errorf("export memory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Importer loads previously exported entries into a memory.
type Importer struct {
	memory TranslationMemory
}

// NewImporter creates an importer targeting the given memory.
func NewImporter(memory TranslationMemory) *Importer {
	return &Importer{memory: memory}
}

// Import loads entries from exported JSON. Entries that fail to store are
// counted, not fatal.
func (i *Importer) Import(data []byte) (*ImportResult, error) {
	var export ExportFormat
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if err := i.memory.Set(entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile loads entries from an export file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	return i.Import(data)
}
