package patan

import "runtime/debug"

const (
	modulePath   = "github.com/toefel18/patan"
	artifactName = "patan"
)

// Version returns "patan-<version>" from the build information of the
// running binary. It never fails: when the version cannot be determined the
// returned string says why.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return artifactName + "-unknown (no build info)"
	}
	return artifactName + "-" + moduleVersion(info)
}

func moduleVersion(info *debug.BuildInfo) string {
	if info.Main.Path == modulePath {
		if info.Main.Version == "" {
			return "(devel)"
		}
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path != modulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown (module not in build info)"
}
