package config

import "flag"

// Ops are the scriptable operations. When none is requested the interactive
// editor starts.
type Ops struct {
	File      string
	List      bool
	Get       string
	Set       string
	Unset     string
	Delete    bool
	Yes       bool
	Path      bool
	Detect    bool
	DetectKey string
	Apply     bool
	Backup    string
	Restore   string
}

func (ops Ops) HasCommand() bool {
	return ops.List || ops.Get != "" || ops.Set != "" || ops.Unset != "" ||
		ops.Delete || ops.Path || ops.Detect || ops.Backup != "" || ops.Restore != ""
}

func ParseFlags(base Config) (Config, Ops) {
	theme := flag.String("theme", base.Theme, "Editor theme (dark or light)")
	logLevel := flag.String("log-level", base.LogLevel, "Log level")

	var ops Ops
	flag.StringVar(&ops.File, "file", "", "Settings file (default: platform location)")
	flag.BoolVar(&ops.List, "list", false, "List all preference keys and values")
	flag.StringVar(&ops.Get, "get", "", "Print the value of KEY")
	flag.StringVar(&ops.Set, "set", "", "Set KEY=VALUE and persist")
	flag.StringVar(&ops.Unset, "unset", "", "Revert KEY to its default")
	flag.BoolVar(&ops.Delete, "delete", false, "Delete the settings file")
	flag.BoolVar(&ops.Yes, "yes", false, "Skip the delete confirmation prompt")
	flag.BoolVar(&ops.Path, "path", false, "Print the settings file location")
	flag.BoolVar(&ops.Detect, "detect", false, "Probe for external helper applications (optionally one KEY)")
	flag.BoolVar(&ops.Apply, "apply", false, "Write detected paths for unset keys")
	flag.StringVar(&ops.Backup, "backup", "", "Copy the settings file to DEST")
	flag.StringVar(&ops.Restore, "restore", "", "Replace the settings file from SRC")
	flag.Parse()
	if ops.Detect && flag.NArg() > 0 {
		ops.DetectKey = flag.Arg(0)
	}

	base.Theme = *theme
	base.LogLevel = *logLevel
	return base, ops
}
