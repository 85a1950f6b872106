package device

import (
	"context"
	"regexp"
	"strings"

	"github.com/vrpctl/vrpctl/pkg/config"
)

// Info is what "display version" tells us about a device.
type Info struct {
	OSVersion string
	Model     string
	Hostname  string
}

var (
	versionRE  = regexp.MustCompile(`Version +([\w.]+)`)
	modelRE    = regexp.MustCompile(`(?m)^Huawei +(\S+)`)
	hostnameRE = regexp.MustCompile(`(?m)^\S+ uptime is`)
)

// ParseInfo extracts version, model, and hostname from raw "display version"
// output. Fields the output lacks stay empty.
func ParseInfo(out string) Info {
	var info Info
	if m := versionRE.FindStringSubmatch(out); m != nil {
		info.OSVersion = strings.TrimSuffix(m[1], ",")
	}
	if m := modelRE.FindStringSubmatch(out); m != nil {
		info.Model = m[1]
	}
	if m := hostnameRE.FindString(out); m != "" {
		info.Hostname = strings.Fields(m)[0]
	}
	return info
}

// FetchInfo runs "display version" and parses the result.
func FetchInfo(ctx context.Context, tr Transport) (Info, error) {
	out, err := tr.RunCommands(ctx, []config.Command{config.Plain("display version")})
	if err != nil {
		return Info{}, err
	}
	if len(out) == 0 {
		return Info{}, nil
	}
	return ParseInfo(out[0]), nil
}
