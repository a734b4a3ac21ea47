package initialize

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/devshell-sh/cli/internal/assets"
	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/fileutils"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/pkg/descriptorfile"
)

// Params are the arguments set by the init command
type Params struct {
	Name    string
	Channel string
	Path    string
}

type primeable interface {
	primer.Outputer
}

// Initialize writes a starter descriptor file into the target directory
type Initialize struct {
	out output.Outputer
}

func New(prime primeable) *Initialize {
	return &Initialize{
		out: prime.Output(),
	}
}

func (i *Initialize) Run(params *Params) error {
	dir := params.Path
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return errs.Wrap(err, "Could not determine working directory")
		}
	}

	target := filepath.Join(dir, constants.ConfigFileName)
	if fileutils.FileExists(target) {
		return locale.NewInputError("err_init_exists", "", target)
	}

	name := params.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	chanName := params.Channel
	if chanName == "" {
		chanName = constants.DefaultChannel
	}

	contents, err := renderTemplate(name, chanName)
	if err != nil {
		return err
	}

	if err := fileutils.WriteFile(target, contents); err != nil {
		return errs.Wrap(err, "Could not write descriptor file to %s", target)
	}

	// Parse what we just wrote, so a broken template can never ship a broken file
	if _, err := descriptorfile.Parse(target); err != nil {
		return errs.Wrap(err, "Generated descriptor file does not validate")
	}

	i.out.Notice(locale.Tr("init_notice_created", target))
	return nil
}

func renderTemplate(name, channelName string) ([]byte, error) {
	tplContents, err := assets.ReadFileBytes("descriptor/devshell.yaml.tpl")
	if err != nil {
		return nil, errs.Wrap(err, "Could not read descriptor template asset")
	}

	t, err := template.New("descriptor").Parse(string(tplContents))
	if err != nil {
		return nil, errs.Wrap(err, "Could not parse descriptor template")
	}

	var out bytes.Buffer
	err = t.Execute(&out, map[string]string{
		"Name":    name,
		"Channel": channelName,
	})
	if err != nil {
		return nil, errs.Wrap(err, "Could not execute descriptor template")
	}

	return out.Bytes(), nil
}
