// Package enroll implements the group create/join flow: minting or
// validating a group code, registering the member, and persisting the
// device's GroupConfig.
//
// Unlike the synchronizer, errors here are surfaced to the user: a failed
// attempt leaves nothing persisted and the user retries.
package enroll

import (
	"context"
	"fmt"
	"strings"

	"famlist/internal/codegen"
	"famlist/internal/common"
	"famlist/internal/models"
)

// GroupStore is the remote group surface the flow needs.
type GroupStore interface {
	InsertGroup(ctx context.Context, id string) error
	GroupExists(ctx context.Context, id string) error
}

// MemberStore registers members remotely.
type MemberStore interface {
	InsertMember(ctx context.Context, groupID, name string) error
}

// ConfigStore persists the resulting GroupConfig.
type ConfigStore interface {
	Save(cfg models.GroupConfig) error
}

// Flow validates input, talks to the remote store and persists the config.
// groups and members may be nil (remote unconfigured): the flow then
// succeeds locally without remote registration, and group existence is not
// enforced.
type Flow struct {
	groups  GroupStore
	members MemberStore
	configs ConfigStore

	// newCode is a test seam over codegen.Generate.
	newCode func() string
}

// NewFlow returns a Flow over the given stores.
func NewFlow(groups GroupStore, members MemberStore, configs ConfigStore) *Flow {
	return &Flow{
		groups:  groups,
		members: members,
		configs: configs,
		newCode: func() string { return codegen.Generate(codegen.GroupCodeLength) },
	}
}

// Create mints a new group code, registers the group and the member
// remotely, and persists the GroupConfig. Nothing is persisted locally
// unless every remote step succeeds.
func (f *Flow) Create(ctx context.Context, name string) (models.GroupConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.GroupConfig{}, fmt.Errorf("member name required: %w", common.ErrorValidation)
	}

	code := f.newCode()
	if f.groups != nil {
		if err := f.groups.InsertGroup(ctx, code); err != nil {
			return models.GroupConfig{}, fmt.Errorf("creating group: %w", err)
		}
		if err := f.members.InsertMember(ctx, code, name); err != nil {
			return models.GroupConfig{}, fmt.Errorf("registering member: %w", err)
		}
	}

	cfg := models.GroupConfig{GroupID: code, MemberName: name}
	if err := f.configs.Save(cfg); err != nil {
		return models.GroupConfig{}, fmt.Errorf("persisting membership: %w", err)
	}
	return cfg, nil
}

// Join validates that the group code exists, registers the member and
// persists the GroupConfig. An unknown code is reported as
// common.ErrorNoSuchGroup, distinct from generic failures.
func (f *Flow) Join(ctx context.Context, code, name string) (models.GroupConfig, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return models.GroupConfig{}, fmt.Errorf("member name required: %w", common.ErrorValidation)
	}
	if code == "" {
		return models.GroupConfig{}, fmt.Errorf("group code required: %w", common.ErrorValidation)
	}

	if f.groups != nil {
		if err := f.groups.GroupExists(ctx, code); err != nil {
			// Lookup errors and absence both read as "no such group";
			// only the existence check gates a join.
			return models.GroupConfig{}, fmt.Errorf("%s: %w", code, common.ErrorNoSuchGroup)
		}
		if err := f.members.InsertMember(ctx, code, name); err != nil {
			return models.GroupConfig{}, fmt.Errorf("registering member: %w", err)
		}
	}

	cfg := models.GroupConfig{GroupID: code, MemberName: name}
	if err := f.configs.Save(cfg); err != nil {
		return models.GroupConfig{}, fmt.Errorf("persisting membership: %w", err)
	}
	return cfg, nil
}
