// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package databag

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/collections/set"
)

const (
	dataBagsDir = "data_bags"
	itemExt     = ".json"
)

// RepoSource reads data bags from a chef-repo checkout laid out as
// <root>/data_bags/<container>/<bag>.json.
type RepoSource struct {
	root string
}

// NewRepoSource returns a Source reading the chef-repo at root.
func NewRepoSource(root string) *RepoSource {
	return &RepoSource{root: root}
}

// ListContainers implements Source.
func (s *RepoSource) ListContainers(_ context.Context) (set.Strings, error) {
	dir := filepath.Join(s.root, dataBagsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, unavailable(err, "listing data bags in %q", dir)
	}
	result := set.NewStrings()
	for _, entry := range entries {
		if entry.IsDir() {
			result.Add(entry.Name())
		}
	}
	return result, nil
}

// ListBags implements Source.
func (s *RepoSource) ListBags(_ context.Context, container string) (set.Strings, error) {
	dir := filepath.Join(s.root, dataBagsDir, container)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, unavailable(err, "listing items of data bag %q", container)
	}
	result := set.NewStrings()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, itemExt) {
			continue
		}
		result.Add(strings.TrimSuffix(name, itemExt))
	}
	return result, nil
}

// FetchBag implements Source.
func (s *RepoSource) FetchBag(_ context.Context, container, bag string) (Content, error) {
	path := filepath.Join(s.root, dataBagsDir, container, bag+itemExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, unavailable(err, "reading data bag item %s/%s", container, bag)
	}
	return decodeItem(data, container, bag)
}

func decodeItem(data []byte, container, bag string) (Content, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		logger.Debugf("data bag item %s/%s is empty", container, bag)
		return NewContent(""), nil
	}
	var raw interface{}
	if err := decodeJSON(data, &raw); err != nil {
		return Content{}, unavailable(err, "decoding data bag item %s/%s", container, bag)
	}
	return NewContent(raw), nil
}
