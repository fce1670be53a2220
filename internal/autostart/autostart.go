// Package autostart registers the inputhook service to start on login.
package autostart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"text/template"
)

const label = "io.inputhook.service"

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .Exec}}</string>
{{- range .Args}}
        <string>{{xml .}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name=inputhook
Comment=System-wide keyboard and mouse hook
Exec={{quote .Exec}}{{range .Args}} {{quote .}}{{end}}
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

// entry is the command line started at login
type entry struct {
	Label string
	Exec  string
	Args  []string
}

var funcs = template.FuncMap{
	"xml": func(s string) (string, error) {
		var b bytes.Buffer
		err := xml.EscapeText(&b, []byte(s))
		return b.String(), err
	},
	"quote": func(s string) string {
		if s != "" && !strings.ContainsAny(s, " \t\"\\$`") {
			return s
		}
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
		return `"` + r.Replace(s) + `"`
	},
}

func render(text string, e entry) ([]byte, error) {
	tmpl, err := template.New("autostart").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := tmpl.Execute(&b, e); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func current(args []string) (entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return entry{}, fmt.Errorf("failed to get executable path: %w", err)
	}
	return entry{Label: label, Exec: execPath, Args: args}, nil
}

// Enable starts the running executable with args at every login.
func Enable(args []string) error {
	e, err := current(args)
	if err != nil {
		return err
	}
	return enable(e)
}

// Disable removes the login entry. It is not an error if none exists.
func Disable() error { return disable() }

// IsEnabled reports whether a login entry exists.
func IsEnabled() bool { return isEnabled() }
