package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/workspace"
)

// SaveTheme records the active theme name in the config file.
func SaveTheme(configPath, name string) error {
	return SaveSetting(configPath, "theme", name)
}

// SaveRecentFiles records the recent files list in the config file,
// trimmed to MaxRecentFiles.
func SaveRecentFiles(configPath string, files []string) error {
	if files == nil {
		files = []string{}
	}
	return SaveSetting(configPath, "recent_files", files[:min(len(files), MaxRecentFiles)])
}

// SaveSetting sets one top-level key of the config file to value. Comments
// and the formatting of every other key are preserved, and the file is
// replaced atomically.
func SaveSetting(configPath, key string, value any) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := setKey(&doc, key, &valueNode); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := workspace.WriteFileAtomic(configPath, buf.Bytes()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	log.Debug(log.CatConfig, "saved setting", "key", key, "path", configPath)
	return nil
}

// setKey replaces key in the document's root mapping, appending it when
// absent. An empty document becomes a mapping holding only key.
func setKey(doc *yaml.Node, key string, value *yaml.Node) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

	if doc.Kind == 0 {
		*doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{keyNode, value},
			}},
		}
		return nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("config is not a YAML document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			// keep comments attached to the old value
			value.LineComment = root.Content[i+1].LineComment
			root.Content[i+1] = value
			return nil
		}
	}
	root.Content = append(root.Content, keyNode, value)
	return nil
}
