package override

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephburnett/jd/v2"
	"github.com/samber/oops"
	"go.yaml.in/yaml/v4"

	"github.com/aquasecurity/nvd-schema/pkg/log"
)

// Config represents the override configuration file
type Config struct {
	Patches []PatchEntry `yaml:"patches"`
}

// PatchEntry corrects a single upstream record
type PatchEntry struct {
	Target string `yaml:"target"` // Record ID: a CVE ID (e.g. "CVE-2020-0001") or a CPE name
	Diff   string `yaml:"diff"`   // Path to jd diff file (relative to overrides dir)
}

// Patches holds loaded override configuration
type Patches struct {
	entries      map[string]PatchEntry
	overridesDir string
}

// Patch represents a matched patch that can be applied to a record
type Patch struct {
	target string
	diff   jd.Diff
}

// Load reads config.yaml from the given directory
func Load(overridesDir string) (*Patches, error) {
	eb := oops.With("overrides_dir", overridesDir)

	configPath := filepath.Join(overridesDir, "config.yaml")
	f, err := os.Open(configPath)
	if err != nil {
		return nil, eb.Wrapf(err, "failed to open config file")
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, eb.Wrapf(err, "failed to parse config.yaml")
	}

	patches := &Patches{
		entries:      make(map[string]PatchEntry, len(cfg.Patches)),
		overridesDir: overridesDir,
	}

	for _, p := range cfg.Patches {
		eb := eb.With("target", p.Target, "diff", p.Diff)
		target := strings.TrimSpace(p.Target)
		switch {
		case target == "":
			return nil, eb.Errorf("patch entry missing 'target' field")
		case p.Diff == "":
			return nil, eb.Errorf("patch entry missing 'diff' field")
		case !filepath.IsLocal(p.Diff):
			return nil, eb.Errorf("diff path must be local")
		}
		if _, ok := patches.entries[target]; ok {
			return nil, eb.Errorf("duplicate patch target")
		}

		patches.entries[target] = PatchEntry{
			Target: target,
			Diff:   p.Diff,
		}
	}

	log.Info("Loaded override patches", log.Int("count", len(patches.entries)))
	return patches, nil
}

// Match looks up the patch for a record ID.
// Returns (patch, true) if a match is found, (nil, false) otherwise.
// The diff file is read when a match is found.
func (p *Patches) Match(id string) (*Patch, bool, error) {
	if p == nil || id == "" {
		return nil, false, nil
	}

	entry, ok := p.entries[id]
	if !ok {
		return nil, false, nil
	}

	diffPath := filepath.Join(p.overridesDir, entry.Diff)
	diff, err := jd.ReadDiffFile(diffPath)
	if err != nil {
		return nil, false, oops.With("diff_file", diffPath, "target", id).Wrapf(err, "failed to read/parse diff file")
	}

	return &Patch{target: id, diff: diff}, true, nil
}

// Apply patches a record in generic tree form.
// Returns:
//   - (nil, false, nil) if the override deletes the record
//   - (patched, true, nil) if the patch was applied successfully
func (p *Patch) Apply(record any) (any, bool, error) {
	eb := oops.With("target", p.target)

	original, err := json.Marshal(record)
	if err != nil {
		return nil, false, eb.Wrapf(err, "failed to encode record")
	}

	node, err := jd.ReadJsonString(string(original))
	if err != nil {
		return nil, false, eb.Wrapf(err, "failed to parse original JSON")
	}

	patched, err := node.Patch(p.diff)
	if err != nil {
		return nil, false, eb.Wrapf(err, "failed to apply patch")
	}

	content := patched.Json()
	if content == "" {
		log.Debug("Record removed by override", log.RecordID(p.target))
		return nil, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.UseNumber()

	var tree any
	if err = dec.Decode(&tree); err != nil {
		return nil, false, eb.Wrapf(err, "failed to decode patched JSON")
	}

	log.Debug("Applied override patch", log.RecordID(p.target))
	return tree, true, nil
}

// Count returns the number of patch entries
func (p *Patches) Count() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}
