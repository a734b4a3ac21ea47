package locale

import (
	"bytes"
	"log"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/nicksnyder/go-i18n/i18n"
	"github.com/thoas/go-funk"

	"github.com/devshell-sh/cli/internal/condition"
)

// Supported languages
var Supported = []string{"en-US"}

var translateFunction i18n.TranslateFunc

func init() {
	path := getLocalePath()

	funk.ForEach(Supported, func(x string) {
		i18n.MustLoadTranslationFile(filepath.Join(path, strings.ToLower(x)+".yaml"))
	})

	Set("en-US")
}

// getLocalePath exists to facilitate running Go test scripts from their sub-directories, if no tests are being ran
// this just returns `locale/`
func getLocalePath() string {
	path := "locale"

	if !condition.InTest() {
		return path
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		log.Panic("Could not call Caller(0)")
	}

	abs := filepath.Dir(file)

	var err error
	abs, err = filepath.Abs(filepath.Join(abs, "..", ".."))
	if err != nil {
		log.Panic(err)
	}

	return filepath.Join(abs, path)
}

// Set the active language to the given locale
func Set(localeName string) {
	if !funk.Contains(Supported, localeName) {
		log.Panicf("Locale does not exist: %s", localeName)
	}

	var err error
	translateFunction, err = i18n.Tfunc(localeName)
	if err != nil {
		log.Panicf("Could not load locale %s: %v", localeName, err)
	}
}

// T aliases to i18n.Tfunc()
func T(translationID string, args ...interface{}) string {
	return translateFunction(translationID, args...)
}

// Tr is like T but it accepts positional arguments, which the translation can address as V0, V1, V2 etc
func Tr(translationID string, values ...string) string {
	return T(translationID, parseInput(values...))
}

// Tl is like Tr, but it accepts a fallback locale which is used if no translation for the given ID exists
func Tl(translationID, locale string, values ...string) string {
	args := parseInput(values...)
	translation := T(translationID, args)
	if translation == translationID {
		translation = renderLiteral(locale, args)
	}
	return translation
}

func parseInput(values ...string) map[string]interface{} {
	args := make(map[string]interface{}, len(values))
	for i, v := range values {
		args["V"+strconv.Itoa(i)] = v
	}
	return args
}

func renderLiteral(value string, args map[string]interface{}) string {
	tpl, err := template.New("locale").Parse(value)
	if err != nil {
		return value
	}

	var out bytes.Buffer
	if err := tpl.Execute(&out, args); err != nil {
		return value
	}
	return out.String()
}
