package library

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/oslnodes/internal/ctxlog"
	"github.com/vk/oslnodes/internal/fsutil"
)

// TargetsLibrary is the library that declares the known generation targets.
// It is always loaded, whether or not the caller names it.
const TargetsLibrary = "targets"

// Loader reads node-definition libraries from a directory tree of HCL
// documents.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new library loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load builds a Document from the libraries under root. When libraries is
// empty every library under root is loaded; otherwise the targets library
// plus each named library is loaded. Implementation source paths are
// resolved against root.
func (l *Loader) Load(ctx context.Context, root string, libraries []string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	var paths []string
	if len(libraries) == 0 {
		paths = []string{root}
	} else {
		paths = append(paths, filepath.Join(root, TargetsLibrary))
		for _, lib := range libraries {
			if lib == TargetsLibrary {
				continue
			}
			paths = append(paths, filepath.Join(root, lib))
		}
	}
	logger.Debug("Loading node-definition libraries.", "root", root, "paths", paths)

	doc := NewDocument()
	for _, path := range paths {
		if err := l.loadPath(ctx, doc, root, path); err != nil {
			return nil, err
		}
	}

	logger.Debug("Library loading complete.",
		"targets", len(doc.Targets()), "nodedefs", len(doc.NodeDefs()))
	return doc, nil
}

func (l *Loader) loadPath(ctx context.Context, doc *Document, root, path string) error {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to walk library path %s: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl library files found in path.", "path", path)
		return nil
	}

	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse library file %s: %w", file, diags)
		}

		var rootBlocks fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &rootBlocks)
		if diags.HasErrors() {
			return fmt.Errorf("failed to decode library file %s: %w", file, diags)
		}

		for _, t := range rootBlocks.Targets {
			doc.addTarget(t.Name)
		}
		for _, nd := range rootBlocks.NodeDefs {
			def, err := translateNodeDef(nd, root)
			if err != nil {
				return fmt.Errorf("invalid nodedef %q in %s: %w", nd.Name, file, err)
			}
			doc.AddNodeDef(def)
		}
		logger.Debug("Loaded library file.", "file", file)
	}
	return nil
}

// translateNodeDef converts the HCL-specific schema into the catalog model,
// evaluating default expressions and resolving implementation source paths.
func translateNodeDef(nd *nodeDefSchema, root string) (*NodeDef, error) {
	def := &NodeDef{
		Name:            nd.Name,
		Node:            nd.Node,
		Description:     nd.Description,
		implementations: make(map[string]*Implementation),
	}

	for _, in := range nd.Inputs {
		input := &InputDef{
			Name:        in.Name,
			Type:        in.Type,
			Description: in.Description,
			Editable:    true,
		}
		if in.Editable != nil {
			input.Editable = *in.Editable
		}
		if in.Default != nil {
			val, diags := in.Default.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("default for input %q: %w", in.Name, diags)
			}
			input.Default = val
		}
		def.Inputs = append(def.Inputs, input)
	}

	for _, out := range nd.Outputs {
		def.Outputs = append(def.Outputs, &OutputDef{
			Name:        out.Name,
			Type:        out.Type,
			Description: out.Description,
		})
	}

	for _, impl := range nd.Implementations {
		source := impl.Source
		if !filepath.IsAbs(source) {
			source = filepath.Join(root, source)
		}
		abs, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("implementation source %q: %w", impl.Source, err)
		}
		def.implementations[impl.Target] = &Implementation{
			Target:     impl.Target,
			EntryPoint: impl.EntryPoint,
			Source:     abs,
		}
	}

	return def, nil
}
