// This file is part of imxoverlay.
//
// imxoverlay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// imxoverlay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with imxoverlay.  If not, see <https://www.gnu.org/licenses/>.


package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/modalflag"
	"github.com/jetsetilly/imxoverlay/mp3enc"
	"github.com/jetsetilly/imxoverlay/notifications"
	"github.com/jetsetilly/imxoverlay/overlay"
	"github.com/jetsetilly/imxoverlay/paths"
	"github.com/jetsetilly/imxoverlay/performance"
	"github.com/jetsetilly/imxoverlay/prefs"
	"github.com/jetsetilly/imxoverlay/statsview"
	"github.com/jetsetilly/imxoverlay/version"

	// window systems available to the overlay
	_ "github.com/jetsetilly/imxoverlay/winsys/sdlwin"
	_ "github.com/jetsetilly/imxoverlay/winsys/x11"
)

// name of the preferences file in the resource directory
const prefsFile = "preferences"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative
	// handler is more appropriate. for example, the OVERLAY mode reads
	// ctrl-c from the terminal and the FBSINK mode stops the sink cleanly.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Stdout, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync, output io.Writer, args []string) {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("OVERLAY", "FBSINK", "ENCODE", "VERIFY")
	showVersion := md.AddBool("version", false, "print version information")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		// 10
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		sync.state <- stateRequest{req: reqQuit}
		return
	}

	switch md.Mode() {
	case "OVERLAY":
		err = overlayDemo(md, sync)

	case "FBSINK":
		err = fbsinkMode(md, sync)

	case "ENCODE":
		err = encode(md)

	case "VERIFY":
		err = verify(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by every mode.
type common struct {
	log       *bool
	prefs     *string
	save      *bool
	profile   *string
	statsview *bool
}

func addCommon(md *modalflag.Modes) common {
	c := common{
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:   md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
		save:    md.AddBool("saveprefs", false, "save preferences to disk"),
		profile: md.AddString("profile", "none", "run performance profilers: cpu, mem, trace, all (comma separated)"),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

// apply the common flags. the preferences are loaded from the resource
// directory with the command line preferences taking precedence.
func (c common) apply(output io.Writer) (*preferences, error) {
	// set debugging log echo
	if *c.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if c.statsview != nil && *c.statsview {
		statsview.Launch(output)
	}

	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}

	p, err := newPreferences(pth, *c.prefs)
	if err != nil {
		return nil, err
	}

	if *c.save {
		if err := p.dsk.Save(); err != nil {
			return nil, err
		}
		fmt.Fprintf(output, "preferences saved to %s\n", pth)
	}

	return p, nil
}

// profiled runs the function with the profilers requested on the command
// line. the profiles are written to the resource directory.
func (c common) profiled(output io.Writer, mode string, run func() error) error {
	p, err := performance.ParseProfile(*c.profile)
	if err != nil {
		return err
	}

	if p == performance.ProfileNone {
		return run()
	}

	prefix, err := paths.ResourcePath("profiles", paths.UniqueFilename(strings.ToLower(mode), ""))
	if err != nil {
		return err
	}

	err = performance.RunProfiler(p, prefix, run)
	for _, fn := range p.Filenames(prefix) {
		fmt.Fprintf(output, "profile written to %s\n", fn)
	}

	return err
}

// preferences of every component.
type preferences struct {
	dsk     *prefs.Disk
	overlay *overlay.Preferences
	fbsink  *fbsink.Preferences
	mp3enc  *mp3enc.Preferences
}

func newPreferences(pth string, commandLine string) (*preferences, error) {
	prefs.PushCommandLineStack(commandLine)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
		}
	}()

	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	p := &preferences{dsk: dsk}

	p.overlay, err = overlay.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}
	p.fbsink, err = fbsink.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}
	p.mp3enc, err = mp3enc.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}

	if err := dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// notices are echoed to the log.
type notices struct{}

// Notify implements the notifications.Notify interface.
func (notices) Notify(notice notifications.Notice) error {
	logger.Log(logger.Allow, "notice", notice)
	return nil
}

// explicitly returns the names of the flags that were set on the command
// line for the current mode.
func explicitly(md *modalflag.Modes) map[string]bool {
	set := make(map[string]bool)
	md.Visit(func(flag string) {
		set[flag] = true
	})
	return set
}
