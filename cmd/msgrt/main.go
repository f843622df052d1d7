/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command msgrt stands up the messaging runtime's primitives (command server/client,
// publisher, subscriber) from a config file plus flags, and exposes the housekeeping
// sub-commands (completion, configure, error table) around them.
package main

import (
	"fmt"
	"os"
	"strings"

	libcbr "github.com/sabouaram/msgrt/cobra"
	libcfg "github.com/sabouaram/msgrt/config"
	cptclt "github.com/sabouaram/msgrt/config/components/commandclient"
	cptsrv "github.com/sabouaram/msgrt/config/components/commandserver"
	cptlog "github.com/sabouaram/msgrt/config/components/log"
	cptpub "github.com/sabouaram/msgrt/config/components/publisher"
	cptsub "github.com/sabouaram/msgrt/config/components/subscriber"
	libver "github.com/sabouaram/msgrt/version"
	libvpr "github.com/sabouaram/msgrt/viper"
	spfcbr "github.com/spf13/cobra"
)

// Stamped at build time via -ldflags "-X main.Release=... -X main.Build=... -X main.Date=...".
var (
	Release = "0.0.0-dev"
	Build   = "unknown"
	Date    = "unknown"
)

const basename = "msgrt"

func main() {
	var (
		cfgFile string
		verbose int
	)

	vrs := libver.NewVersion(libver.License_MIT, basename,
		"messaging runtime over a shared broker: command channel and topic channel",
		Date, Build, Release, "Nicolas JUHEL", basename, nil, 0)

	vpr := libvpr.New()
	cfg := libcfg.New()

	cfg.RegisterFuncViper(vpr.Viper)
	cfg.ComponentSet("log", cptlog.New())
	cfg.ComponentSet("server", cptsrv.New())
	cfg.ComponentSet("client", cptclt.New())
	cfg.ComponentSet("publisher", cptpub.New())
	cfg.ComponentSet("subscriber", cptsub.New())

	app := libcbr.New()
	app.SetVersion(vrs)
	app.SetViper(func() libvpr.Viper { return vpr })
	app.SetFuncInit(func() {
		if cfgFile != "" {
			vpr.SetConfigFile(cfgFile)
			if err := vpr.ReadInConfig(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	})
	app.Init()

	if err := app.SetFlagConfig(true, &cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.SetFlagVerbose(true, &verbose)

	if err := cfg.RegisterFlag(app.Cobra(), vpr.Viper()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := app.NewCommand("start", "Start the configured messaging components",
		"Start every component named in the config file (command server, client, publisher, subscriber) and run until interrupted.",
		"", "--config "+basename+".yaml")
	start.RunE = func(_ *spfcbr.Command, _ []string) error {
		if err := cfg.Start(); err != nil {
			return err
		}

		libcfg.WaitNotify()
		cfg.Stop()
		return nil
	}

	app.AddCommand(start)
	app.AddCommandCompletion()
	app.AddCommandConfigure("cfg", basename, cfg.DefaultConfig)
	app.AddCommandPrintErrorCode(func(item, value string) {
		fmt.Printf("%s\t%s\n", item, strings.TrimSpace(value))
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
