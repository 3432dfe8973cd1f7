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
	"crypto/tls"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// CapGmail is the capability advertised by servers that understand
// Gmail's IMAP extensions (X-GM-RAW, X-GM-LABELS, etc.).
const CapGmail = "X-GM-EXT-1"

type Client interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)

	List(ref string, name string, ch chan *imap.MailboxInfo) error

	// UidSearchRaw issues "UID SEARCH X-GM-RAW <query>". Only servers
	// advertising X-GM-EXT-1 understand it.
	UidSearchRaw(query string) ([]uint32, error)

	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error

	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error

	Expunge(ch chan uint32) error

	Support(cap string) (bool, error)

	Mailbox() *imap.MailboxStatus

	Close() error

	Logout() error

	LoggedOut() <-chan struct{}
}

type ClientConfig struct {
	HostPort  string
	Auth      Authenticator
	TLS       bool
	TLSConfig *tls.Config
	Debug     bool
	Updates   chan<- client.Update
}

type ClientFactory interface {
	NewClient(cfg *ClientConfig) (Client, error)
}

type Message = imap.Message
type SeqSet = imap.SeqSet
type StoreItem = imap.StoreItem
type MailboxStatus = imap.MailboxStatus
type MailboxInfo = imap.MailboxInfo
type FetchItem = imap.FetchItem
type Literal = imap.Literal
