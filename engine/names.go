package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	iface "NamesConv/interface"
	"NamesConv/names"
	"NamesConv/source"
)

// LoadNames resolves a NamesConf into a class list. A file ending in .yaml/.yml is
// parsed as a dataset config; any other file is read as a .names list. Inline data must
// be a []string or names.List.
func LoadNames(ctx context.Context, conf iface.NamesConf) (names.List, error) {
	if !conf.IsFile {
		switch v := conf.Data.(type) {
		case names.List:
			return v, nil
		case []string:
			return names.List(v), nil
		default:
			return nil, fmt.Errorf("names must be a slice or a file path, got %T", conf.Data)
		}
	}
	path, ok := conf.Data.(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("names file path must be a non-empty string, got %T", conf.Data)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		text, err := source.NewReader(0).ReadText(ctx, path)
		if err != nil {
			return nil, err
		}
		list, _, err := names.Extract(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return list, nil
	default:
		return names.LoadFile(path)
	}
}
