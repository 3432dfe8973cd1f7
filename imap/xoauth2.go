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

package imap

import (
	"errors"

	"github.com/sqs/go-xoauth2"
)

// XOAuth2 is Google's pre-RFC 7628 SASL mechanism. The initial response
// carries the whole exchange; a challenge only arrives on failure and
// holds a JSON error blob.
const XOAuth2 = "XOAUTH2"

type xoauth2Client struct {
	username string
	token    string
	failed   bool
}

func NewXOAuth2Client(username string, accessToken string) *xoauth2Client {
	return &xoauth2Client{username: username, token: accessToken}
}

func (c *xoauth2Client) Start() (string, []byte, error) {
	return XOAuth2, []byte(xoauth2.OAuth2String(c.username, c.token)), nil
}

func (c *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	if c.failed {
		return nil, errors.New("xoauth2: authentication failed: " + string(challenge))
	}

	// The server wants an empty line before it issues the tagged NO.
	c.failed = true
	return []byte{}, nil
}
