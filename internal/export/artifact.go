package export

import (
	"fmt"
	"os"

	"taskware/internal/job"
)

// File is one generated artifact, named relative to the caller's chosen
// output directory. Immutable once generated.
type File struct {
	Name string
	Mode os.FileMode
	Body string
}

// Format selects the artifact family.
type Format string

const (
	FormatSalt    Format = "salt"
	FormatCrontab Format = "crontab"
	FormatSystemd Format = "systemd"
)

// Generate renders the artifact set for one job in the given format.
func Generate(j job.Job, format Format) ([]File, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	switch format {
	case FormatSalt:
		return Salt(j)
	case FormatCrontab:
		return Crontab(j)
	case FormatSystemd:
		return Systemd(j)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
