package sscommon

import (
	"bytes"
	"text/template"

	"github.com/devshell-sh/cli/internal/assets"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/fileutils"
)

// RcData is the data exposed to the rc file templates under assets/contents/shells
type RcData struct {
	Env map[string]string
	WD  string
}

// SetupRcFile generates a temporary rc file from the named asset template and
// returns its path. The caller owns the file and is responsible for removing it.
func SetupRcFile(templateName, ext string, data RcData) (string, error) {
	tplContents, err := assets.ReadFileBytes("shells/" + templateName)
	if err != nil {
		return "", errs.Wrap(err, "Could not read asset: shells/%s", templateName)
	}

	t, err := template.New("rcfile").Parse(string(tplContents))
	if err != nil {
		return "", errs.Wrap(err, "Could not parse rc file template: %s", templateName)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errs.Wrap(err, "Could not execute rc file template: %s", templateName)
	}

	rcPath, err := fileutils.WriteTempFile("", "devshell-rc*"+ext, buf.Bytes(), 0600)
	if err != nil {
		return "", errs.Wrap(err, "Could not write rc file for template: %s", templateName)
	}

	return rcPath, nil
}
