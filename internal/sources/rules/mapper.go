package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sava-app/sava/internal/domain"
)

// Mapper compiles a rules Config into domain host rules.
type Mapper struct{}

// NewMapper creates a new rules mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRules converts the config into compiled HostRules. Platform names must
// be members of the enumeration — a typo here should fail loudly at startup,
// not silently classify everything as web.
func (m *Mapper) MapRules(cfg Config) ([]domain.HostRule, error) {
	out := make([]domain.HostRule, 0)

	for name, hosts := range cfg.Platforms {
		p := domain.Platform(strings.ToLower(strings.TrimSpace(name)))
		if !p.Valid() {
			return nil, fmt.Errorf("unknown platform %q in rules file", name)
		}

		for _, host := range hosts {
			host = strings.ToLower(strings.TrimSpace(host))
			if host == "" {
				continue
			}
			pattern, err := compileHostPattern(host)
			if err != nil {
				return nil, fmt.Errorf("invalid host %q for platform %s: %w", host, p, err)
			}
			out = append(out, domain.HostRule{Platform: p, Pattern: pattern})
		}
	}

	return out, nil
}

// compileHostPattern matches the host itself and any subdomain of it.
func compileHostPattern(host string) (*regexp.Regexp, error) {
	return regexp.Compile(`(^|\.)` + regexp.QuoteMeta(host) + `$`)
}
