package seed

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk shape of a seed file. Photos and comments refer to
// users by login name because ids are assigned at load time.
type Fixture struct {
	Version string         `yaml:"version"`
	Users   []FixtureUser  `yaml:"users"`
	Photos  []FixturePhoto `yaml:"photos"`
}

type FixtureUser struct {
	LoginName   string `yaml:"login_name"`
	Password    string `yaml:"password"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Occupation  string `yaml:"occupation"`
}

type FixturePhoto struct {
	Owner    string           `yaml:"owner"`
	FileName string           `yaml:"file_name"`
	DateTime time.Time        `yaml:"date_time"`
	Comments []FixtureComment `yaml:"comments"`
}

type FixtureComment struct {
	Author   string    `yaml:"author"`
	Comment  string    `yaml:"comment"`
	DateTime time.Time `yaml:"date_time"`
}

// Decode reads one YAML document, rejecting unknown keys, and validates it.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate checks required fields and that every login name reference resolves.
func (fx *Fixture) Validate() error {
	if strings.TrimSpace(fx.Version) == "" {
		return fmt.Errorf("fixture: version is required")
	}
	known := make(map[string]struct{}, len(fx.Users))
	for i, u := range fx.Users {
		switch {
		case strings.TrimSpace(u.LoginName) == "":
			return fmt.Errorf("fixture: users[%d]: login_name is required", i)
		case strings.TrimSpace(u.Password) == "":
			return fmt.Errorf("fixture: users[%d] %q: password is required", i, u.LoginName)
		case strings.TrimSpace(u.FirstName) == "":
			return fmt.Errorf("fixture: users[%d] %q: first_name is required", i, u.LoginName)
		case strings.TrimSpace(u.LastName) == "":
			return fmt.Errorf("fixture: users[%d] %q: last_name is required", i, u.LoginName)
		}
		if _, dup := known[u.LoginName]; dup {
			return fmt.Errorf("fixture: duplicate login_name %q", u.LoginName)
		}
		known[u.LoginName] = struct{}{}
	}
	for i, p := range fx.Photos {
		if _, ok := known[p.Owner]; !ok {
			return fmt.Errorf("fixture: photos[%d]: unknown owner %q", i, p.Owner)
		}
		if strings.TrimSpace(p.FileName) == "" {
			return fmt.Errorf("fixture: photos[%d]: file_name is required", i)
		}
		if p.DateTime.IsZero() {
			return fmt.Errorf("fixture: photos[%d]: date_time is required", i)
		}
		for j, c := range p.Comments {
			if _, ok := known[c.Author]; !ok {
				return fmt.Errorf("fixture: photos[%d].comments[%d]: unknown author %q", i, j, c.Author)
			}
			if strings.TrimSpace(c.Comment) == "" {
				return fmt.Errorf("fixture: photos[%d].comments[%d]: comment is required", i, j)
			}
			if c.DateTime.IsZero() {
				return fmt.Errorf("fixture: photos[%d].comments[%d]: date_time is required", i, j)
			}
		}
	}
	return nil
}
