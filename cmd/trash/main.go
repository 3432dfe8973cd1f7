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

package trash

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/vs49688/gmailgrab/cmd/config"
	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap/client"
)

type trashConfig struct {
	Mailbox string
	Expunge bool
	Force   bool
	Limit   uint
}

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	trashCfg := &trashConfig{}

	flags := cfg.Parameters()
	flags = append(flags, []cli.Flag{
		&cli.StringFlag{
			Name:        "mailbox",
			Usage:       "mailbox the uids belong to",
			EnvVars:     []string{"GMAILGRAB_MAILBOX"},
			Destination: &trashCfg.Mailbox,
		},
		&cli.BoolFlag{
			Name:        "expunge",
			Usage:       "permanently remove the messages after labelling",
			Destination: &trashCfg.Expunge,
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "bypass the safety limit",
			Destination: &trashCfg.Force,
		},
		&cli.UintFlag{
			Name:        "limit",
			Usage:       "refuse to trash more messages than this without --force",
			Destination: &trashCfg.Limit,
			Value:       gmail.DefaultTrashLimit,
		},
	}...)

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "trash",
		Usage:     "Move messages to Gmail's Bin",
		ArgsUsage: "uid...",
		Flags:     flags,
		Action:    func(context *cli.Context) error { return run(context, cfg, trashCfg) },
	})
	return app
}

func run(context *cli.Context, cfg *config.CliConfig, trashCfg *trashConfig) error {
	cfg.ConfigureLogging()

	if context.NArg() == 0 {
		return errors.New("at least one uid is required")
	}

	var uids []uint32
	for _, arg := range context.Args().Slice() {
		uid, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("malformed uid %q: %w", arg, err)
		}

		uids = append(uids, uint32(uid))
	}

	gmailConfig := gmail.Config{}
	if err := cfg.Account.BuildGmailConfig(&gmailConfig); err != nil {
		return err
	}

	c, err := gmail.NewClient(&gmailConfig, &client.Factory{})
	if err != nil {
		return err
	}

	defer func() { _ = c.Logout() }()

	return c.Trash(uids, &gmail.TrashOptions{
		Mailbox:     trashCfg.Mailbox,
		Expunge:     trashCfg.Expunge,
		Force:       trashCfg.Force,
		SafetyLimit: trashCfg.Limit,
	})
}
