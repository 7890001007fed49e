package shell

import (
	"context"
	"strings"

	"github.com/viant/afs"
)

// LoadScript reads a command script from the given URL; blank lines and
// lines starting with # are skipped.
func LoadScript(ctx context.Context, URL string) ([]string, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
