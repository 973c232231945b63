package core

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// jsonEnvelope matches the hybrid frontmatter format produced by the content
// pipeline: a "---json" marker, a single JSON object, a closing "---" marker,
// and the markdown body.
var jsonEnvelope = regexp.MustCompile(`(?s)\A---json\s*(\{.*\})\s*---(.*)\z`)

// ParseContent splits a raw content file into its metadata mapping and the
// markdown body. It never fails: every malformed input degrades to an empty
// mapping with the original text as body, so one bad file cannot take down
// a listing page.
func ParseContent(raw []byte) (map[string]interface{}, string) {
	text := string(raw)

	if m := jsonEnvelope.FindStringSubmatch(text); m != nil {
		metadata := make(map[string]interface{})
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &metadata); err != nil {
			// Bad JSON block: degrade to "no metadata", keep the whole file as body
			return map[string]interface{}{}, text
		}
		return unwrapNested(metadata), strings.TrimSpace(m[2])
	}

	// Legacy front-matter header between marker lines (YAML/TOML autodetect).
	// Without a header the file is all body; it passes through byte for byte.
	metadata := make(map[string]interface{})
	rest, err := frontmatter.Parse(strings.NewReader(text), &metadata)
	if err != nil || len(metadata) == 0 {
		return map[string]interface{}{}, text
	}

	normalized, ok := normalizeValue(metadata).(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, text
	}
	return unwrapNested(normalized), strings.TrimSpace(string(rest))
}

// unwrapNested guards against a historical double-wrapping bug in the
// upstream ingestion tooling which occasionally emits
// {"metadata": {...actual fields...}}. Existing content files on disk still
// carry this shape, so it has to stay supported.
func unwrapNested(metadata map[string]interface{}) map[string]interface{} {
	if nested, ok := metadata["metadata"].(map[string]interface{}); ok {
		return nested
	}
	return metadata
}

// normalizeValue converts the map[interface{}]interface{} values produced by
// the legacy YAML decoder into map[string]interface{} so that both parse
// paths yield the same shape.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = normalizeValue(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = normalizeValue(val)
		}
		return s
	default:
		return v
	}
}

// EncodeContent serializes a metadata mapping and markdown body back into the
// on-disk envelope format. The external tooling (ingestion, translation)
// writes files in exactly this shape; ParseContent(EncodeContent(m, b))
// round-trips the metadata.
func EncodeContent(metadata map[string]interface{}, body string) ([]byte, error) {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---json\n")
	sb.Write(data)
	sb.WriteString("\n---\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}
