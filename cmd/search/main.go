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

package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vs49688/gmailgrab/cmd/config"
	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap/client"
)

type searchConfig struct {
	Params   cli.StringSlice
	Mailbox  string
	Download bool
}

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	searchCfg := &searchConfig{}

	flags := cfg.Parameters()
	flags = append(flags, []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "param",
			Aliases:     []string{"p"},
			Usage:       "key=value search parameter, may be repeated",
			Destination: &searchCfg.Params,
		},
		&cli.StringFlag{
			Name:        "mailbox",
			Usage:       "mailbox to search instead of the url's",
			EnvVars:     []string{"GMAILGRAB_MAILBOX"},
			Destination: &searchCfg.Mailbox,
		},
		&cli.BoolFlag{
			Name:        "download",
			Usage:       "fetch message bodies and print summaries instead of uids",
			Destination: &searchCfg.Download,
		},
	}...)

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search a mailbox using Gmail's search operator syntax",
		ArgsUsage: "[raw query]",
		Flags:     flags,
		Action:    func(context *cli.Context) error { return run(context, cfg, searchCfg) },
	})
	return app
}

func buildParams(kvs []string) (gmail.Params, error) {
	params := gmail.Params{}
	for _, kv := range kvs {
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("malformed search parameter: %q", kv)
		}

		params[k] = v
	}

	return params, nil
}

func resolveQuery(context *cli.Context, searchCfg *searchConfig) (string, error) {
	rawQuery := strings.Join(context.Args().Slice(), " ")
	kvs := searchCfg.Params.Value()

	if rawQuery != "" && len(kvs) > 0 {
		return "", errors.New("a raw query and --param are mutually exclusive")
	}

	if rawQuery != "" {
		return rawQuery, nil
	}

	params, err := buildParams(kvs)
	if err != nil {
		return "", err
	}

	return gmail.BuildQuery(params)
}

func run(context *cli.Context, cfg *config.CliConfig, searchCfg *searchConfig) error {
	cfg.ConfigureLogging()

	query, err := resolveQuery(context, searchCfg)
	if err != nil {
		return err
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

	opts := &gmail.SearchOptions{Mailbox: searchCfg.Mailbox}

	if !searchCfg.Download {
		uids, err := c.SearchUIDs(query, opts)
		if err != nil {
			return err
		}

		for _, uid := range uids {
			fmt.Println(uid)
		}
		return nil
	}

	emails, err := c.Search(query, opts)
	if err != nil {
		return err
	}

	for _, e := range emails {
		fmt.Printf("%v\t%v\t%v\t%v\t%d attachment(s)\n",
			e.UID, e.Date.Format("2006-01-02 15:04"), e.From, e.Subject, len(e.Attachments))
	}
	return nil
}
