package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// DefaultProfilesFile is looked up in the user's home directory.
const DefaultProfilesFile = ".opsatlascfg"

// Profile holds the credentials of one upstream metrics API.
type Profile struct {
	Name  string
	Host  string
	Token string
}

func (p Profile) Descriptor() domain.ConfigProfile {
	return domain.ConfigProfile{Name: p.Name, Host: p.Host}
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	host := section.Key("host").String()
	if host == "" {
		return nil, fmt.Errorf("profile %s has no host", name)
	}

	return &Profile{
		Name:  name,
		Host:  host,
		Token: section.Key("token").String(),
	}, nil
}
