// Package yaml reads source definitions from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/pricescout"
	"github.com/fwojciec/pricescout/fs"
	"gopkg.in/yaml.v3"
)

// sourcesFile is the document layout:
//
//	sources:
//	  - name: siteA
//	    strategy: title-block
//	    urls:
//	      - https://a.example/p/1
//	    urls_file: siteA.txt
type sourcesFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Name     string   `yaml:"name"`
	Strategy string   `yaml:"strategy"`
	URLs     []string `yaml:"urls"`
	URLsFile string   `yaml:"urls_file"`
}

// LoadSources reads a sources file from path. Relative urls_file entries
// are resolved against the file's directory.
func LoadSources(path string) ([]*pricescout.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pricescout.Errorf(pricescout.EINVALID, "sources file %s does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	return ReadSources(f, filepath.Dir(path))
}

// ReadSources decodes source definitions from r. Inline urls come first,
// followed by the contents of urls_file. Every source is validated.
func ReadSources(r io.Reader, baseDir string) ([]*pricescout.Source, error) {
	var doc sourcesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, pricescout.Errorf(pricescout.EINVALID, "failed to parse sources YAML: %v", err)
	}

	sources := make([]*pricescout.Source, 0, len(doc.Sources))
	seen := make(map[string]bool, len(doc.Sources))
	for _, entry := range doc.Sources {
		source := &pricescout.Source{
			Name:     entry.Name,
			Strategy: pricescout.Strategy(entry.Strategy),
			URLs:     append([]string{}, entry.URLs...),
		}

		if entry.URLsFile != "" {
			path := entry.URLsFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			urls, err := fs.ReadURLList(path)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", entry.Name, err)
			}
			source.URLs = append(source.URLs, urls...)
		}

		if err := source.Validate(); err != nil {
			return nil, err
		}
		if seen[source.Name] {
			return nil, pricescout.Errorf(pricescout.EINVALID, "duplicate source %q", source.Name)
		}
		seen[source.Name] = true
		sources = append(sources, source)
	}

	return sources, nil
}
