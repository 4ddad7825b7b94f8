package render

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/modelspec"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// funcMap exposes the dialect helpers to the templates. All of them are
// pure functions; rendering the same binding twice yields byte-identical
// output.
//
//nolint:gochecknoglobals // Template function table, fixed at init.
var funcMap = template.FuncMap{
	"num":   Num,
	"bool":  Bool,
	"rad":   DegToRad,
	"array": Array,
	"radArray": func(degrees []float64) string {
		rads := make([]float64, len(degrees))
		for i, d := range degrees {
			rads[i] = DegToRad(d)
		}
		return Array(rads)
	},
	"inc": func(i int) int { return i + 1 },
}

//nolint:gochecknoglobals // Parsed once at init; templates are embedded.
var templates = template.Must(
	template.New("thermogen").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl"),
)

// Artifact is one rendered output file: content plus its destination path
// relative to the export root.
type Artifact struct {
	// Path is relative to the export root, always forward-slashed.
	Path string

	// Content is the rendered file body.
	Content []byte

	// Building and Zone name the origin of the artifact; empty for
	// project-level wrapper files.
	Building string
	Zone     string
}

// Zone renders the model source file for one zone.
func Zone(spec *modelspec.ZoneModelSpec, za *aggregate.ZoneAggregates) (*Artifact, error) {
	binding, err := NewBinding(spec, za)
	if err != nil {
		return nil, err
	}

	variant, err := variantFor(spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, variant.template, binding); err != nil {
		return nil, fmt.Errorf("%w: rendering zone %s: %v", ErrTemplateBinding, spec.ZoneName, err)
	}

	project := building.SanitizeName(spec.ProjectName)
	bldg := building.SanitizeName(spec.BuildingName)
	return &Artifact{
		Path:     path.Join(project, bldg, binding.ModelName+".mo"),
		Content:  buf.Bytes(),
		Building: spec.BuildingName,
		Zone:     spec.ZoneName,
	}, nil
}

// packageBinding feeds the package.mo wrapper template.
type packageBinding struct {
	Within      string
	Name        string
	Description string
}

// orderBinding feeds the package.order wrapper template.
type orderBinding struct {
	Entries []string
}

// BuildingPackage renders the package.mo and package.order wrapper files
// for one building directory. zoneNames must already be in declaration
// order; they are sanitized here.
func BuildingPackage(projectName string, b *building.Building) ([]*Artifact, error) {
	project := building.SanitizeName(projectName)
	name := building.SanitizeName(b.Name)

	entries := make([]string, 0, len(b.Zones))
	for _, z := range b.Zones {
		entries = append(entries, building.SanitizeName(z.Name))
	}

	pkg, err := renderTemplate("package_mo.tmpl", packageBinding{
		Within:      project,
		Name:        name,
		Description: "Reduced-order zone models of building " + name,
	})
	if err != nil {
		return nil, err
	}
	order, err := renderTemplate("package_order.tmpl", orderBinding{Entries: entries})
	if err != nil {
		return nil, err
	}

	return []*Artifact{
		{Path: path.Join(project, name, "package.mo"), Content: pkg, Building: b.Name},
		{Path: path.Join(project, name, "package.order"), Content: order, Building: b.Name},
	}, nil
}

// ProjectPackage renders the project-level package.mo and package.order.
// Only the given buildings are listed; a partial run must not reference
// building directories that were never written.
func ProjectPackage(p *building.Project, buildings []*building.Building) ([]*Artifact, error) {
	project := building.SanitizeName(p.Name)

	entries := make([]string, 0, len(buildings))
	for _, b := range buildings {
		entries = append(entries, building.SanitizeName(b.Name))
	}

	pkg, err := renderTemplate("package_mo.tmpl", packageBinding{
		Name:        project,
		Description: "Models exported by thermogen",
	})
	if err != nil {
		return nil, err
	}
	order, err := renderTemplate("package_order.tmpl", orderBinding{Entries: entries})
	if err != nil {
		return nil, err
	}

	return []*Artifact{
		{Path: path.Join(project, "package.mo"), Content: pkg},
		{Path: path.Join(project, "package.order"), Content: order},
	}, nil
}

func renderTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("%w: rendering %s: %v", ErrTemplateBinding, name, err)
	}
	return buf.Bytes(), nil
}
