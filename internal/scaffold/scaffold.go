package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/ident"
)

//go:embed templates/*.tmpl
var scaffoldFS embed.FS

const templateName = "templates/config.yaml.tmpl"

// Currency is one starter entry rendered into the data file.
type Currency struct {
	ID        string
	Numeric   int
	Scale     int
	Countries []string
	Weight    int
}

// Data holds all template variables available to the data file template.
type Data struct {
	Name          string // project name shown in the header
	Version       string // data version, e.g. "0.1.0"
	Namespace     string // optional namespace hinted for custom currencies
	PropagateKeys []string
	Currencies    []Currency
	Year          int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData creates Data with a single starter currency derived from code.
func NewData(name, code string) (*Data, error) {
	d := &Data{
		Name:    name,
		Version: "0.1.0",
		Year:    time.Now().Year(),
	}
	if code == "" {
		return d, nil
	}
	id, ok := ident.Normalize(code)
	if !ok {
		return nil, fmt.Errorf("invalid currency %q", code)
	}
	d.Currencies = []Currency{{ID: id.String(), Numeric: -1, Scale: 2}}
	d.Namespace = id.Namespace
	return d, nil
}

// Render executes the data file template.
func Render(data *Data) ([]byte, error) {
	tmplBytes, err := scaffoldFS.ReadFile(templateName)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	tmpl, err := template.New("config.yaml").
		Funcs(template.FuncMap{"quoteAll": quoteAll}).
		Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate renders the data file to path. An existing file is never overwritten
// unless force is set.
func Generate(data *Data, path string, force bool) (*Result, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
	}

	content, err := Render(data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result := &Result{Path: path}

	// Validate the generated file against JSON Schema.
	valResult, valErr := dataset.Validate(content)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate data file: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

func quoteAll(xs []string) string {
	quoted := make([]string, len(xs))
	for i, x := range xs {
		quoted[i] = strconv.Quote(x)
	}
	return strings.Join(quoted, ", ")
}
