package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/rotisserie/eris"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// ReleasesURL é consultada para obter a última release publicada.
var ReleasesURL = "https://api.github.com/repos/diillson/kitchen-cost-engine/releases/latest"

// populateFromBuildInfo preenche Version/Commit/BuildTime a partir do build info
// quando o ldflags não definiu uma versão.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	if tag := settings["vcs.tag"]; tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// IsNewer informa se latest é uma versão maior que current.
// Sufixos de pre-release e build são ignorados; componente ausente vale 0.
func IsNewer(latest, current string) bool {
	a, b := parseVersion(latest), parseVersion(current)
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return x > y
		}
	}
	return false
}

func parseVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out[:i]
		}
		out[i] = n
	}
	return out
}

// LatestRelease busca a tag da última release, sem o prefixo "v".
func LatestRelease(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "version: build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "version: fetch latest release")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("version: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", eris.Wrap(err, "version: decode release")
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// CheckLatestVersion avisa quando uma versão mais recente está disponível.
// Falhas de rede são ignoradas silenciosamente.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, err := LatestRelease(ctx, http.DefaultClient)
	if err != nil || !IsNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of Kitchen Cost Engine is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/diillson/kitchen-cost-engine/cmd/kitchen-cost@latest")
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	if Commit == "" {
		if BuildTime == "" {
			return fmt.Sprintf("%s (development)", ver)
		}
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	}
	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s)", ver, Commit)
}
