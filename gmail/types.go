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

package gmail

import (
	"crypto/tls"
	"errors"
	"time"

	imap2 "github.com/vs49688/gmailgrab/imap"
)

const (
	// GmailHostPort is where Gmail's IMAP endpoint lives.
	GmailHostPort = "imap.gmail.com:993"

	DefaultMailbox = "INBOX"

	// TrashLabel is the label Gmail uses for its Bin. Adding it to a
	// message removes the message from every other mailbox.
	TrashLabel = `\Trash`

	// DefaultTrashLimit is the number of messages Trash will move
	// in one call unless TrashOptions.Force is set.
	DefaultTrashLimit = 10

	// gmailDate is the date layout Gmail's after:/before: operators expect.
	gmailDate = "2006/01/02"
)

var (
	ErrEmptyQuery       = errors.New("empty search query")
	ErrUnknownSearchKey = errors.New("unknown search key")
	ErrNotGmail         = errors.New("server does not advertise " + imap2.CapGmail)
	ErrTooManyMessages  = errors.New("too many messages")
)

type Config struct {
	// HostPort is the server to connect to. Defaults to GmailHostPort,
	// in which case TLS is implied.
	HostPort  string
	Auth      imap2.Authenticator
	TLS       bool
	TLSConfig *tls.Config
	Debug     bool

	// Mailbox is selected when a search doesn't name one. Defaults
	// to INBOX.
	Mailbox string

	// IgnoredFilenames are attachment names dropped during collection.
	IgnoredFilenames []string
}

type SearchOptions struct {
	// Mailbox overrides Config.Mailbox for this call.
	Mailbox string
	// Writable selects the mailbox read-write. Searches default to
	// read-only so fetches don't set \Seen.
	Writable bool
}

type TrashOptions struct {
	Mailbox string
	// Expunge permanently removes the messages after labelling.
	Expunge bool
	// Force bypasses the safety limit.
	Force       bool
	SafetyLimit uint
}

type MailboxInfo struct {
	Name       string
	Delimiter  string
	Attributes []string
}

type Email struct {
	UID         uint32
	Subject     string
	From        string
	To          string
	Date        time.Time
	Text        string
	HTML        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	MimeType string
	Content  []byte

	// Metadata of the message the attachment came from.
	From    string
	To      string
	Subject string
	Date    time.Time

	// Hex digests of Content.
	MD5Sum string
	SHA256 string
}
