package feed

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/aquasecurity/nvd-schema/pkg/log"
	"github.com/aquasecurity/nvd-schema/pkg/types"
)

// WalkItemDir decodes every CVE item stored as its own JSON file under root,
// e.g. the vuln-list layout nvd/2020/CVE-2020-0001.json, in lexical path order.
// Directories, empty files and files without a .json extension are skipped.
func (r Reader) WalkItemDir(root string, fn func(types.CveItem) error) error {
	eb := oops.With("root_dir", root)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		eb := eb.With("path", path)
		if err != nil {
			return eb.Wrapf(err, "walk dir error")
		} else if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return eb.Wrapf(err, "file info error")
		}

		if info.Size() == 0 {
			r.logger.Info("Invalid file size", log.FilePath(path), log.Int64("size", info.Size()))
			return nil
		}

		item, ok, err := r.readItemFile(path)
		if err != nil {
			return eb.Wrap(err)
		} else if !ok {
			r.logger.Debug("Skipping file due to override", log.FilePath(path))
			return nil
		}

		if err = fn(item); err != nil {
			return eb.Wrapf(err, "walk error")
		}
		return nil
	})
	if err != nil {
		return eb.Wrapf(err, "file walk error")
	}
	return nil
}

func (r Reader) readItemFile(path string) (types.CveItem, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.CveItem{}, false, oops.Wrapf(err, "file open error")
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var tree any
	if err = dec.Decode(&tree); err != nil {
		return types.CveItem{}, false, oops.Wrapf(err, "json decode error")
	}

	tree, keep, err := r.patch(tree, cveID(tree))
	if err != nil || !keep {
		return types.CveItem{}, false, err
	}

	item, err := r.decoder.CveItem(tree)
	if err != nil {
		return types.CveItem{}, false, oops.Wrapf(err, "decode error")
	}
	return item, true, nil
}
