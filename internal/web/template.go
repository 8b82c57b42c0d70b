package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/arlenner/doorbell-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onOff": func(b bool) string {
		if b {
			return "ACTIVE"
		}
		return "IDLE"
	},
	"yesNo": func(b bool) string {
		if b {
			return "YES"
		}
		return "NO"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Doorbell {{.Config.DeviceID}}</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.active { color: green; font-weight: bold; }
.idle { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Doorbell {{.Config.DeviceID}} ({{.Config.Location}})</h1>

<table>
<tr><th>Link</th><td class="{{if .LinkUp}}connected{{else}}disconnected{{end}}">
{{if .LinkUp}}CONNECTED{{else}}DISCONNECTED{{end}}
{{- if .LinkStrength}} ({{.LinkStrength}} dBm){{end}}</td></tr>
<tr><th>System active</th><td>{{yesNo .Mode.SystemActive}}</td></tr>
<tr><th>Home mode</th><td>{{yesNo .Mode.HomeMode}}</td></tr>
<tr><th>Motion</th><td class="{{if .MotionLatched}}active{{else}}idle{{end}}">{{onOff .MotionLatched}}</td></tr>
<tr><th>Doorbell</th><td class="{{if .DoorbellLatched}}active{{else}}idle{{end}}">{{onOff .DoorbellLatched}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
</table>

<h2>Events since startup</h2>
<table>
<tr><th>Motion started</th><td>{{.Counts.MotionStarted}}</td></tr>
<tr><th>Motion stopped</th><td>{{.Counts.MotionStopped}}</td></tr>
<tr><th>Doorbell pressed</th><td>{{.Counts.DoorbellPressed}}</td></tr>
<tr><th>Captures</th><td>{{.Counts.Captures}}</td></tr>
</table>

<h2>Configuration</h2>
<table>
<tr><th>Transport</th><td>{{.Config.Transport}} ({{.Config.Endpoint}})</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}} ms</td></tr>
<tr><th>Motion cooldown</th><td>{{.Config.MotionCooldownMs}} ms</td></tr>
<tr><th>Doorbell cooldown</th><td>{{.Config.DoorbellCooldownMs}} ms</td></tr>
<tr><th>Report interval</th><td>{{.Config.ReportIntervalMs}} ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Template errors are programming errors; nothing useful to do at
	// request time.
	_ = indexTmpl.Execute(w, snap)
}
