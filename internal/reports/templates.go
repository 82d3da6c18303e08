package reports

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"csvreport/internal/models"
	"csvreport/web"
)

// TemplateLoader loads the report template and logo from a filesystem
type TemplateLoader struct {
	fsys fs.FS
}

// NewTemplateLoader creates a loader over fsys
func NewTemplateLoader(fsys fs.FS) *TemplateLoader {
	return &TemplateLoader{fsys: fsys}
}

// NewDirTemplateLoader loads templates from dir, or from the embedded
// defaults when dir is empty
func NewDirTemplateLoader(dir string) (*TemplateLoader, error) {
	if dir != "" {
		return NewTemplateLoader(os.DirFS(dir)), nil
	}

	sub, err := fs.Sub(web.TemplatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded templates: %w", models.ErrTemplate, err)
	}
	return NewTemplateLoader(sub), nil
}

// LoadHTMLTemplate loads and parses the named template. Executing it fails
// on any placeholder the data does not define.
func (t *TemplateLoader) LoadHTMLTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(t.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q not found: %w", models.ErrTemplate, name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template %q: %w", models.ErrTemplate, name, err)
	}
	return tmpl, nil
}

// LoadLogo reads the named image and returns it base64 encoded
func (t *TemplateLoader) LoadLogo(name string) (string, error) {
	data, err := fs.ReadFile(t.fsys, name)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read logo %q: %w", models.ErrFileSystem, name, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
