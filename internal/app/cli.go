package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"muserc/internal/config"
	"muserc/internal/domain"
	"muserc/internal/services"
	"muserc/internal/settings"
)

// runCommand executes one scriptable operation. When several are given the
// first in the order below wins.
func runCommand(out io.Writer, in io.Reader, store *settings.Store, ops config.Ops) error {
	switch {
	case ops.Path:
		fmt.Fprintln(out, store.Path())
		return nil
	case ops.List:
		return listKeys(out, store)
	case ops.Get != "":
		value, err := store.Get(domain.Key(ops.Get))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	case ops.Set != "":
		name, value, ok := strings.Cut(ops.Set, "=")
		if !ok {
			return fmt.Errorf("-set expects KEY=VALUE")
		}
		return store.Set(domain.Key(strings.TrimSpace(name)), value)
	case ops.Unset != "":
		return store.Unset(domain.Key(ops.Unset))
	case ops.Delete:
		return deleteFile(out, in, store, ops.Yes)
	case ops.Backup != "":
		return runFileAction(out, services.ActionRequest{
			Type:         services.ActionBackup,
			SettingsPath: store.Path(),
			Destination:  ops.Backup,
		})
	case ops.Restore != "":
		return runFileAction(out, services.ActionRequest{
			Type:         services.ActionRestore,
			SettingsPath: store.Path(),
			Destination:  ops.Restore,
		})
	case ops.Detect:
		return detectTools(out, store, services.NewToolDetector(), ops.DetectKey, ops.Apply)
	default:
		return nil
	}
}

func listKeys(out io.Writer, store *settings.Store) error {
	values := store.Snapshot()
	for _, key := range domain.Keys() {
		marker := " "
		if values.Explicit(key) {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-24s %s\n", marker, key, values.Value(key))
	}
	return nil
}

func deleteFile(out io.Writer, in io.Reader, store *settings.Store, skipPrompt bool) error {
	if !store.Exists() {
		fmt.Fprintln(out, "no settings file to delete")
		return nil
	}
	if !skipPrompt {
		fmt.Fprintf(out, "delete %s? [y/N]: ", store.Path())
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}
	if err := store.Delete(); err != nil {
		return err
	}
	fmt.Fprintln(out, "settings file deleted")
	return nil
}

func runFileAction(out io.Writer, request services.ActionRequest) error {
	result, err := services.NewFileActions().Execute(context.Background(), request)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.Message)
	return nil
}

// detectTools probes for helper applications, for one key or all path keys.
func detectTools(out io.Writer, store *settings.Store, detector services.Detector, keyName string, apply bool) error {
	var request services.DetectRequest
	if keyName != "" {
		key := domain.Key(keyName)
		info, ok := domain.Lookup(key)
		if !ok {
			return fmt.Errorf("%w: %q", settings.ErrUnknownKey, keyName)
		}
		if info.Kind != domain.KindPath {
			return fmt.Errorf("%s is not a path key", keyName)
		}
		request.Keys = []domain.Key{key}
	}
	result, err := detector.Detect(context.Background(), request)
	if err != nil {
		return err
	}
	if len(result.Candidates) == 0 {
		fmt.Fprintln(out, "no helper applications found")
		return nil
	}
	values := store.Snapshot()
	for _, candidate := range result.Candidates {
		fmt.Fprintf(out, "%-24s %s (%s)\n", candidate.Key, candidate.Path, candidate.Source)
	}
	if !apply {
		return nil
	}
	applied := 0
	for _, candidate := range result.Candidates {
		if values.Explicit(candidate.Key) {
			continue
		}
		if err := store.Set(candidate.Key, candidate.Path); err != nil {
			return err
		}
		values = store.Snapshot()
		applied++
	}
	fmt.Fprintf(out, "applied %d detected paths\n", applied)
	return nil
}
