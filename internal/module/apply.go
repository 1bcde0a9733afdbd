package module

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cameronsjo/dsdm/internal/config"
	"github.com/cameronsjo/dsdm/internal/fileutil"
	"github.com/cameronsjo/dsdm/internal/manifest"
	"github.com/cameronsjo/dsdm/internal/render"
	"github.com/cameronsjo/dsdm/internal/ui"
)

// ActionKind says what an apply step does at its destination.
type ActionKind int

const (
	// ActionMkdir creates a destination directory.
	ActionMkdir ActionKind = iota
	// ActionWrite writes a rendered file.
	ActionWrite
)

func (k ActionKind) String() string {
	switch k {
	case ActionMkdir:
		return "mkdir"
	case ActionWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Action is one planned or performed apply step.
type Action struct {
	// Module is the module the source belongs to.
	Module Ref
	Kind   ActionKind
	// Source is the path relative to the module directory.
	Source string
	// Dest is the absolute destination path.
	Dest string
	// Content is the rendered file content. Empty for ActionMkdir.
	Content []byte
	// Perm holds the permission bits of the source file.
	Perm fs.FileMode
	// Previous is the current content at Dest. Only read during a dry run.
	Previous []byte
	// Exists reports whether Dest existed. Only set during a dry run.
	Exists bool
}

// ApplyOptions controls Apply.
type ApplyOptions struct {
	// DryRun renders and resolves everything without touching the export tree.
	DryRun bool
	// Observer, if set, is called for every directory and file after it is
	// created or written, or in place of that during a dry run.
	Observer func(Action)
}

// Apply renders a module into the export tree, then applies its includes in
// declared order. The first error aborts the whole chain; files already
// written stay in place.
func (m *Manager) Apply(ref Ref, opts ApplyOptions) error {
	return m.apply(ref, opts, nil)
}

func (m *Manager) apply(ref Ref, opts ApplyOptions, stack includeStack) error {
	stack, err := stack.push(m, ref)
	if err != nil {
		return err
	}

	ui.Logger.Debug("applying module", "module", ref)

	mf, err := m.Read(ref)
	if err != nil {
		return err
	}

	globals, err := m.Globals()
	if err != nil {
		return err
	}

	ctx, err := manifest.BuildContext(&mf.Templates, &globals.Templates)
	if err != nil {
		return fmt.Errorf("module %s: %w", ref, err)
	}

	delims := globals.Delims()
	a := &applier{
		manager:  m,
		ref:      ref,
		manifest: mf,
		renderer: render.New(delims.Open, delims.Close),
		data:     ctx.Data(),
		opts:     opts,
	}
	if err := a.walk(); err != nil {
		return err
	}

	if len(mf.Include) > 0 {
		ui.Logger.Debug("applying includes", "module", ref, "count", len(mf.Include))
	}
	for _, entry := range mf.Include {
		if err := m.apply(includeRef(entry), opts, stack); err != nil {
			return err
		}
	}

	return nil
}

// applier materialises the files of a single module.
type applier struct {
	manager  *Manager
	ref      Ref
	manifest *manifest.Manifest
	renderer *render.Renderer
	data     map[string]any
	opts     ApplyOptions
}

func (a *applier) walk() error {
	root, err := filepath.EvalSymlinks(a.manager.Dir(a.ref))
	if err != nil {
		return fmt.Errorf("resolve module directory: %w", err)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("calculate relative path: %w", err)
		}
		dest := manifest.ResolveExport(a.manager.cfg, a.ref.Title, a.manifest.Exports, rel)

		switch {
		case d.IsDir():
			return a.mkdir(rel, dest)
		case d.Type().IsRegular():
			if d.Name() == config.ManifestFile {
				return nil
			}
			return a.write(path, rel, dest)
		default:
			ui.Logger.Warn("skipping non-regular file", "module", a.ref, "path", rel)
			return nil
		}
	})
}

func (a *applier) mkdir(rel, dest string) error {
	action := Action{Module: a.ref, Kind: ActionMkdir, Source: rel, Dest: dest}

	if !a.opts.DryRun {
		if err := fileutil.EnsureDir(dest); err != nil {
			return err
		}
	} else {
		_, err := os.Stat(dest)
		action.Exists = err == nil
	}

	a.notify(action)
	return nil
}

func (a *applier) write(path, rel, dest string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	out, err := a.renderer.Render(filepath.ToSlash(filepath.Join(a.ref.String(), rel)), string(src), a.data)
	if err != nil {
		return err
	}

	action := Action{
		Module:  a.ref,
		Kind:    ActionWrite,
		Source:  rel,
		Dest:    dest,
		Content: []byte(out),
		Perm:    info.Mode().Perm(),
	}

	if a.opts.DryRun {
		prev, exists, err := fileutil.ReadIfExists(dest)
		if err != nil {
			return fmt.Errorf("read destination: %w", err)
		}
		action.Previous = prev
		action.Exists = exists
	} else {
		ui.Logger.Debug("writing file", "dest", dest)
		if err := fileutil.WriteFile(dest, action.Content, action.Perm); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
	}

	a.notify(action)
	return nil
}

func (a *applier) notify(action Action) {
	if a.opts.Observer != nil {
		a.opts.Observer(action)
	}
}
