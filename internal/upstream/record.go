// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package upstream maintains the list of web servers the proxy sends
// traffic to. The list lives in the proxy record, keyed by environment
// then cluster:
//
//	production:
//	  webcluster01:
//	    servers:
//	      - "server web01.example.com:80;"
//
// The store has no partial update, so every change reads the whole
// record, edits the list in memory and writes the whole record back.
// Nothing guards against a concurrent writer; the last write wins.
package upstream

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
)

var logger = loggo.GetLogger("bagsync.upstream")

const (
	// RecordPath is the store path of the proxy record.
	RecordPath = "secret/databags/nmdproxy/upstream"

	// StagingDomain marks hosts that belong to the staging environment.
	StagingDomain = "nmdev.us"

	serversKey = "servers"
)

// Route selects the server list within the proxy record.
type Route struct {
	Environment string
	Cluster     string
}

// String implements fmt.Stringer.
func (r Route) String() string {
	return r.Environment + "/" + r.Cluster
}

var (
	// Production is the route for every host outside the staging domain.
	Production = Route{Environment: "production", Cluster: "webcluster01"}

	// Staging is the route for hosts in the staging domain.
	Staging = Route{Environment: "staging", Cluster: "web01"}
)

// RouteFor returns the route the named server belongs to.
func RouteFor(server string) Route {
	if strings.Contains(server, StagingDomain) {
		return Staging
	}
	return Production
}

// Operation is a change to a server list.
type Operation string

const (
	AddServer    Operation = "add"
	RemoveServer Operation = "remove"
)

// Store reads and overwrites whole records.
type Store interface {
	Read(ctx context.Context, path string) (map[string]interface{}, error)
	Write(ctx context.Context, path string, data map[string]interface{}) error
}

// Reporter receives operator progress messages.
type Reporter interface {
	Infof(format string, params ...interface{})
	Warningf(format string, params ...interface{})
}

// Result is the outcome of an update.
type Result struct {
	Route   Route
	Outcome Outcome
	Servers []string
	Written bool
}

// Updater applies server list changes to the proxy record.
type Updater struct {
	store    Store
	reporter Reporter
	dryRun   bool
}

// NewUpdater returns an Updater. With dryRun set the record is read
// and the change reported, but nothing is written.
func NewUpdater(store Store, reporter Reporter, dryRun bool) *Updater {
	return &Updater{
		store:    store,
		reporter: reporter,
		dryRun:   dryRun,
	}
}

// Update adds or removes server from the list it is routed to.
func (u *Updater) Update(ctx context.Context, op Operation, server string) (Result, error) {
	if op != AddServer && op != RemoveServer {
		return Result{}, errors.NotValidf("server operation %q", op)
	}
	route := RouteFor(server)
	result := Result{Route: route}

	stored, err := u.store.Read(ctx, RecordPath)
	if err != nil {
		return result, errors.Annotatef(err, "reading proxy record %q", RecordPath)
	}
	// Edits are made to a copy; the store may hand out its own map.
	record := make(map[string]interface{})
	if stored != nil {
		record = deepcopy.Copy(stored).(map[string]interface{})
	}
	cluster, err := clusterRecord(record, route)
	if err != nil {
		return result, errors.Trace(err)
	}
	servers := u.decodeServers(cluster[serversKey], route)

	switch op {
	case AddServer:
		if len(servers) == 0 {
			u.reporter.Infof("No servers are in rotation for %q", route.Cluster)
		}
		result.Servers, result.Outcome, err = Add(servers, server)
		if err != nil {
			return result, errors.Trace(err)
		}
	case RemoveServer:
		result.Servers, result.Outcome = Remove(servers, server)
	}
	u.report(result, server)

	cluster[serversKey] = result.Servers
	if u.dryRun {
		u.reporter.Infof("Dry run: not writing %q", RecordPath)
		return result, nil
	}
	if err := u.store.Write(ctx, RecordPath, record); err != nil {
		return result, errors.Annotatef(err, "writing proxy record %q", RecordPath)
	}
	result.Written = true
	return result, nil
}

func (u *Updater) decodeServers(raw interface{}, route Route) []string {
	if raw == nil {
		return nil
	}
	var servers []string
	if err := mapstructure.Decode(raw, &servers); err != nil {
		u.reporter.Warningf("Ignoring servers for %s: %v", route, err)
		return nil
	}
	return servers
}

func (u *Updater) report(result Result, server string) {
	cluster := result.Route.Cluster
	switch result.Outcome {
	case Added:
		u.reporter.Infof("Adding server %q to %s", Normalize(server), cluster)
	case AlreadyPresent:
		u.reporter.Infof("Server %q already exists in rotation for %s, no action is required", Normalize(server), cluster)
	case Removed:
		u.reporter.Infof("Removed server %q from %s", server, cluster)
	case NotFound:
		u.reporter.Infof("Could not find server %q in %s [%s] to remove", server, cluster, strings.Join(result.Servers, ","))
	case NothingInRotation:
		u.reporter.Infof("No servers are in rotation for %q", cluster)
	}
	if result.Outcome.Changed() || result.Outcome == NotFound {
		u.reporter.Infof("Servers in %s: [%s]", cluster, strings.Join(result.Servers, ","))
	}
	logger.Debugf("%s %q on %s: %s", result.Outcome, server, result.Route, strings.Join(result.Servers, ","))
}

// clusterRecord returns the mapping holding the route's server list,
// creating any missing levels in record.
func clusterRecord(record map[string]interface{}, route Route) (map[string]interface{}, error) {
	env, err := childRecord(record, route.Environment)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cluster, err := childRecord(env, route.Cluster)
	if err != nil {
		return nil, errors.Annotatef(err, "environment %q", route.Environment)
	}
	return cluster, nil
}

func childRecord(parent map[string]interface{}, key string) (map[string]interface{}, error) {
	switch child := parent[key].(type) {
	case map[string]interface{}:
		return child, nil
	case nil:
		created := make(map[string]interface{})
		parent[key] = created
		return created, nil
	default:
		return nil, errors.NotValidf("%q holding %T", key, child)
	}
}
