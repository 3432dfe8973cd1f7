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

package attachments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vs49688/gmailgrab/cmd/config"
	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap/client"
)

const gmailDate = "2006/01/02"

type attachmentsConfig struct {
	Since   string
	Days    int
	Query   string
	Mailbox string
	Output  string
	Ignore  cli.StringSlice
}

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	attCfg := &attachmentsConfig{}

	flags := cfg.Parameters()
	flags = append(flags, []cli.Flag{
		&cli.StringFlag{
			Name:        "since",
			Usage:       "collect attachments received after this date (YYYY/MM/DD)",
			Destination: &attCfg.Since,
		},
		&cli.IntFlag{
			Name:        "days",
			Usage:       "collect attachments from the last n days",
			Destination: &attCfg.Days,
		},
		&cli.StringFlag{
			Name:        "query",
			Usage:       "collect attachments from messages matching this raw query",
			Destination: &attCfg.Query,
		},
		&cli.StringFlag{
			Name:        "mailbox",
			Usage:       "mailbox to search instead of the url's",
			EnvVars:     []string{"GMAILGRAB_MAILBOX"},
			Destination: &attCfg.Mailbox,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "directory to write attachments to",
			Destination: &attCfg.Output,
			Value:       ".",
		},
		&cli.StringSliceFlag{
			Name:        "ignore",
			Usage:       "attachment filename to skip, may be repeated",
			EnvVars:     []string{"GMAILGRAB_IGNORE"},
			Destination: &attCfg.Ignore,
		},
	}...)

	app.Commands = append(app.Commands, &cli.Command{
		Name:   "attachments",
		Usage:  "Download attachments from matching messages",
		Flags:  flags,
		Action: func(context *cli.Context) error { return run(context, cfg, attCfg) },
	})
	return app
}

func run(_ *cli.Context, cfg *config.CliConfig, attCfg *attachmentsConfig) error {
	cfg.ConfigureLogging()

	nSelectors := 0
	for _, set := range []bool{attCfg.Since != "", attCfg.Days != 0, attCfg.Query != ""} {
		if set {
			nSelectors++
		}
	}

	if nSelectors != 1 {
		return errors.New("exactly one of --since, --days, or --query is required")
	}

	gmailConfig := gmail.Config{IgnoredFilenames: attCfg.Ignore.Value()}
	if err := cfg.Account.BuildGmailConfig(&gmailConfig); err != nil {
		return err
	}

	c, err := gmail.NewClient(&gmailConfig, &client.Factory{})
	if err != nil {
		return err
	}

	defer func() { _ = c.Logout() }()

	opts := &gmail.SearchOptions{Mailbox: attCfg.Mailbox}

	var attachments []gmail.Attachment
	switch {
	case attCfg.Since != "":
		since, err := time.Parse(gmailDate, attCfg.Since)
		if err != nil {
			return fmt.Errorf("malformed --since date: %w", err)
		}

		attachments, err = c.AttachmentsSince(since, opts)
		if err != nil {
			return err
		}
	case attCfg.Days != 0:
		attachments, err = c.AttachmentsForDays(attCfg.Days, opts)
		if err != nil {
			return err
		}
	default:
		attachments, err = c.AttachmentsMatching(attCfg.Query, opts)
		if err != nil {
			return err
		}
	}

	for _, a := range attachments {
		path, err := save(&a, attCfg.Output)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"path":   path,
			"size":   humanize.Bytes(uint64(len(a.Content))),
			"md5":    a.MD5Sum,
			"sha256": a.SHA256,
		}).Info("attachment_saved")
	}

	return nil
}

// save writes the attachment under dir, never clobbering an existing
// file. On collision the name gets a unique infix.
func save(a *gmail.Attachment, dir string) (string, error) {
	name := filepath.Base(a.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "attachment"
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		ext := filepath.Ext(name)
		path = filepath.Join(dir, strings.TrimSuffix(name, ext)+"."+xid.New().String()+ext)
	}

	if err := os.WriteFile(path, a.Content, 0600); err != nil {
		return "", err
	}

	return path, nil
}
