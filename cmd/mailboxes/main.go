/*
 * GmailGrab - Copyright (C) 2023 Zane van Iperen.
 *    Contact: zane@zanevaniperen.com
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 2, and only
 * version 2 as published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 59 Temple Place, Suite 330, Boston, MA  02111-1307  USA
 */

package mailboxes

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vs49688/gmailgrab/cmd/config"
	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap/client"
)

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}

	app.Commands = append(app.Commands, &cli.Command{
		Name:   "mailboxes",
		Usage:  "List mailboxes, Gmail labels included",
		Flags:  cfg.Parameters(),
		Action: func(context *cli.Context) error { return run(context, cfg) },
	})
	return app
}

func run(_ *cli.Context, cfg *config.CliConfig) error {
	cfg.ConfigureLogging()

	gmailConfig := gmail.Config{}
	if err := cfg.Account.BuildGmailConfig(&gmailConfig); err != nil {
		return err
	}

	c, err := gmail.NewClient(&gmailConfig, &client.Factory{})
	if err != nil {
		return err
	}

	defer func() { _ = c.Logout() }()

	mailboxes, err := c.Mailboxes()
	if err != nil {
		return err
	}

	for _, mb := range mailboxes {
		fmt.Printf("%v\t%v\t%v\n", mb.Name, mb.Delimiter, strings.Join(mb.Attributes, " "))
	}
	return nil
}
