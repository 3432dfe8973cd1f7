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

package client

import (
	goImap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/responses"
)

// rawSearchCommand is a "UID SEARCH X-GM-RAW" command. The query is
// written as a regular IMAP string, so the writer takes care of quoting
// and literals. Upstream's SearchCriteria can't represent extension
// keys, hence the hand-built command.
type rawSearchCommand struct {
	query string
}

func (cmd *rawSearchCommand) Command() *goImap.Command {
	return &goImap.Command{
		Name: "UID",
		Arguments: []interface{}{
			goImap.RawString("SEARCH"),
			goImap.RawString("X-GM-RAW"),
			cmd.query,
		},
	}
}

func (c *Client) UidSearchRaw(query string) ([]uint32, error) {
	res := &responses.Search{}

	status, err := c.Execute(&rawSearchCommand{query: query}, res)
	if err != nil {
		return nil, err
	}

	if err := status.Err(); err != nil {
		return nil, err
	}

	return res.Ids, nil
}
