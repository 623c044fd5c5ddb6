// Package plans loads the per-plan resource limits checked by the usage counters.
package plans

import (
	_ "embed"
	"os"
	"sort"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type file struct {
	Plans []usage.Plan `yaml:"plans"`
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	bySlug map[string]usage.Plan
}

// Load reads the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "reading plan catalog %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "parsing plan catalog")
	}
	if len(f.Plans) == 0 {
		return nil, errs.New("plan catalog is empty")
	}

	bySlug := make(map[string]usage.Plan, len(f.Plans))
	for _, p := range f.Plans {
		if p.Slug == "" {
			return nil, errs.New("plan without slug in catalog")
		}
		if _, dup := bySlug[p.Slug]; dup {
			return nil, errs.Newf("duplicate plan %q in catalog", p.Slug)
		}
		for _, r := range []usage.Resource{usage.ResourceTenants, usage.ResourceBranches, usage.ResourceCustomers, usage.ResourceRewards} {
			if v := p.Limits.For(r); v < usage.Unlimited {
				return nil, errs.Newf("plan %q: invalid %s limit %d", p.Slug, r, v)
			}
		}
		bySlug[p.Slug] = p
	}
	return &Catalog{bySlug: bySlug}, nil
}

func (c *Catalog) LimitsFor(slug string) (usage.Limits, error) {
	p, ok := c.bySlug[slug]
	if !ok {
		return usage.Limits{}, errs.Wrapf(usage.ErrPlanNotFound, "plan %q", slug)
	}
	return p.Limits, nil
}

// Plans returns every plan ordered by slug.
func (c *Catalog) Plans() []usage.Plan {
	out := make([]usage.Plan, 0, len(c.bySlug))
	for _, p := range c.bySlug {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
