// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package databag

import (
	"context"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/utils/v4/exec"
	"github.com/kballard/go-shellquote"
)

// KnifeConfig configures a KnifeSource.
type KnifeConfig struct {
	// Binary is the knife executable, "knife" if empty.
	Binary string

	// ConfigFile is passed to knife with --config when set.
	ConfigFile string

	// WorkingDir is the directory knife runs in.
	WorkingDir string
}

// KnifeSource reads data bags from a Chef server by running knife.
type KnifeSource struct {
	config KnifeConfig
	run    func(exec.RunParams) (*exec.ExecResponse, error)
}

// NewKnifeSource returns a Source backed by the knife command line tool.
func NewKnifeSource(config KnifeConfig) *KnifeSource {
	if config.Binary == "" {
		config.Binary = "knife"
	}
	return &KnifeSource{
		config: config,
		run:    exec.RunCommands,
	}
}

// ListContainers implements Source.
func (s *KnifeSource) ListContainers(ctx context.Context) (set.Strings, error) {
	var names []string
	if err := s.knife(ctx, &names, "data", "bag", "list"); err != nil {
		return nil, unavailable(err, "listing data bags")
	}
	return set.NewStrings(names...), nil
}

// ListBags implements Source.
func (s *KnifeSource) ListBags(ctx context.Context, container string) (set.Strings, error) {
	var names []string
	if err := s.knife(ctx, &names, "data", "bag", "show", container); err != nil {
		return nil, unavailable(err, "listing items of data bag %q", container)
	}
	return set.NewStrings(names...), nil
}

// FetchBag implements Source.
func (s *KnifeSource) FetchBag(ctx context.Context, container, bag string) (Content, error) {
	var raw interface{}
	if err := s.knife(ctx, &raw, "data", "bag", "show", container, bag); err != nil {
		return Content{}, unavailable(err, "reading data bag item %s/%s", container, bag)
	}
	return NewContent(raw), nil
}

func (s *KnifeSource) knife(ctx context.Context, out interface{}, args ...string) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	argv := append([]string{s.config.Binary}, args...)
	argv = append(argv, "--format", "json")
	if s.config.ConfigFile != "" {
		argv = append(argv, "--config", s.config.ConfigFile)
	}
	command := shellquote.Join(argv...)
	logger.Tracef("running %s", command)

	result, err := s.run(exec.RunParams{
		Commands:   command,
		WorkingDir: s.config.WorkingDir,
	})
	if err != nil {
		return errors.Trace(err)
	}
	if result.Code != 0 {
		return errors.Errorf("%s exited %d: %s", s.config.Binary, result.Code, strings.TrimSpace(string(result.Stderr)))
	}
	stdout := strings.TrimSpace(string(result.Stdout))
	if stdout == "" {
		// knife prints nothing for an item without content.
		if raw, ok := out.(*interface{}); ok {
			*raw = ""
			return nil
		}
		return errors.Errorf("%s produced no output", s.config.Binary)
	}
	if err := decodeJSON([]byte(stdout), out); err != nil {
		return errors.Annotatef(err, "decoding %s output", s.config.Binary)
	}
	return nil
}
