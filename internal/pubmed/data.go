package pubmed

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"radtools/internal/fileutil"
)

// exportExtensions are the file extensions scanned when loading a
// directory of exports.
var exportExtensions = map[string]bool{
	".pubmed": true,
	".txt":    true,
}

// Data aggregates parsed tables with their file provenance.
type Data struct {
	Tables Tables
	Dir    string
	Files  []string
}

// Load reads PubMed data from path: a single export file, or a directory
// whose supported files are parsed and unioned.
func Load(path string, log logrus.FieldLogger) (*Data, error) {
	if path == "" {
		return nil, fileutil.ErrMissingPath
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return LoadDir(path, log)
	}
	return LoadFile(path, log)
}

// LoadFile parses one export file.
func LoadFile(path string, log logrus.FieldLogger) (*Data, error) {
	handle, err := fileutil.Stat(path)
	if err != nil {
		return nil, err
	}

	tables, err := ParseFile(handle.Path, log)
	if err != nil {
		return nil, err
	}

	return &Data{
		Tables: tables,
		Dir:    handle.Dir,
		Files:  []string{handle.Name},
	}, nil
}

// LoadDir parses every supported export in dir and folds the results
// left-to-right through Merge, eliminating duplicate rows across files.
func LoadDir(dir string, log logrus.FieldLogger) (*Data, error) {
	root, err := fileutil.StatDir(dir)
	if err != nil {
		return nil, err
	}

	paths, err := fileutil.List(root, false, func(path string) bool {
		return exportExtensions[strings.ToLower(filepath.Ext(path))]
	})
	if err != nil {
		return nil, err
	}

	data := &Data{Dir: root}
	for _, path := range paths {
		tables, err := ParseFile(path, log)
		if err != nil {
			return nil, err
		}
		data.Tables = Merge(data.Tables, tables)
		data.Files = append(data.Files, filepath.Base(path))
	}
	return data, nil
}
