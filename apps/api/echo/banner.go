package echoapi

import (
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/color"
	"golang.org/x/term"

	"github.com/trezcool/studentlogs/core"
)

// printStartupInfo lists where the app can be reached. Colors are dropped when w is not a terminal.
func printStartupInfo(w io.Writer, conf *core.Config) {
	c := color.New()
	c.SetOutput(w)
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		c.Disable()
	}

	host := conf.Server.Host
	if host == "" {
		host = "localhost"
	}
	base := fmt.Sprintf("http://%s:%d", host, conf.Server.Port)

	c.Printf("%s %s\n", c.Bold(c.Cyan(conf.AppName)), c.Grey("("+conf.Env+", build "+conf.Build+")"))
	c.Printf("  %s  %s\n", c.Green("web page "), base+"/")
	c.Printf("  %s  %s\n", c.Green("courses  "), base+"/api/v1/courses")
	c.Printf("  %s  %s\n", c.Green("logs     "), base+"/api/v1/logs")
	c.Printf("  %s  %s\n", c.Yellow("storage  "), conf.Database.Engine)
	if conf.Server.DebugHost != "" {
		c.Printf("  %s  %s\n", c.Yellow("debug    "), "http://"+conf.Server.DebugHost+"/debug/vars")
	}
}
