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
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	log "github.com/sirupsen/logrus"
	imap2 "github.com/vs49688/gmailgrab/imap"
)

var rfc822Section = func() *imap.BodySectionName {
	s, err := imap.ParseBodySectionName(imap.FetchRFC822)
	if err != nil {
		panic(err)
	}
	return s
}()

// Client is a Gmail mailbox session. It is not safe for concurrent use;
// the underlying protocol is a single command/response stream.
type Client struct {
	cfg    Config
	client imap2.Client

	gmailChecked bool
	gmailOK      bool
}

func NewClient(cfg *Config, factory imap2.ClientFactory) (*Client, error) {
	ourCfg := *cfg
	if ourCfg.HostPort == "" {
		ourCfg.HostPort = GmailHostPort
		ourCfg.TLS = true
	}
	if ourCfg.Mailbox == "" {
		ourCfg.Mailbox = DefaultMailbox
	}

	log.WithFields(log.Fields{
		"host_port": ourCfg.HostPort,
		"tls":       ourCfg.TLS,
	}).Debug("gmail_connecting")

	c, err := factory.NewClient(&imap2.ClientConfig{
		HostPort:  ourCfg.HostPort,
		Auth:      ourCfg.Auth,
		TLS:       ourCfg.TLS,
		TLSConfig: ourCfg.TLSConfig,
		Debug:     ourCfg.Debug,
		Updates:   nil,
	})

	if err != nil {
		return nil, err
	}

	log.WithField("host_port", ourCfg.HostPort).Debug("gmail_logged_in")
	return &Client{cfg: ourCfg, client: c}, nil
}

// ensureGmail checks X-GM-EXT-1 once per session. Raw searches and
// label stores are meaningless without it.
func (c *Client) ensureGmail() error {
	if !c.gmailChecked {
		ok, err := c.client.Support(imap2.CapGmail)
		if err != nil {
			return err
		}
		c.gmailChecked = true
		c.gmailOK = ok
	}

	if !c.gmailOK {
		return ErrNotGmail
	}

	return nil
}

func (c *Client) selectMailbox(mbox string, readOnly bool) error {
	if mbox == "" {
		mbox = c.cfg.Mailbox
	}

	status, err := c.client.Select(mbox, readOnly)
	if err != nil {
		return fmt.Errorf("select %v: %w", mbox, err)
	}

	log.WithFields(log.Fields{
		"mailbox":      status.Name,
		"num_messages": status.Messages,
		"unseen":       status.Unseen,
		"read_only":    readOnly,
	}).Debug("gmail_mailbox_selected")
	return nil
}

func (o *SearchOptions) mailbox() string {
	if o == nil {
		return ""
	}
	return o.Mailbox
}

func (o *SearchOptions) readOnly() bool {
	return o == nil || !o.Writable
}

// SearchUIDs runs query through Gmail's X-GM-RAW search and returns the
// matching UIDs in ascending order. No matches is not an error.
func (c *Client) SearchUIDs(query string, opts *SearchOptions) ([]uint32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.ensureGmail(); err != nil {
		return nil, err
	}

	if err := c.selectMailbox(opts.mailbox(), opts.readOnly()); err != nil {
		return nil, err
	}

	log.WithField("query", query).Debug("gmail_search")

	uids, err := c.client.UidSearchRaw(query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	log.WithFields(log.Fields{
		"query":       query,
		"num_matches": len(uids),
	}).Debug("gmail_search_result")
	return uids, nil
}

// Search is SearchUIDs plus a fetch of the message bodies.
func (c *Client) Search(query string, opts *SearchOptions) ([]*Email, error) {
	uids, err := c.SearchUIDs(query, opts)
	if err != nil {
		return nil, err
	}

	if len(uids) == 0 {
		return nil, nil
	}

	return c.fetchParsed(uids)
}

// AdvancedSearchUIDs builds an X-GM-RAW query from params and searches.
func (c *Client) AdvancedSearchUIDs(params Params, opts *SearchOptions) ([]uint32, error) {
	query, err := BuildQuery(params)
	if err != nil {
		return nil, err
	}

	return c.SearchUIDs(query, opts)
}

func (c *Client) AdvancedSearch(params Params, opts *SearchOptions) ([]*Email, error) {
	query, err := BuildQuery(params)
	if err != nil {
		return nil, err
	}

	return c.Search(query, opts)
}

// FetchEmails downloads and parses the given UIDs from the selected
// mailbox. UIDs the server doesn't report back are skipped silently.
func (c *Client) FetchEmails(uids []uint32, opts *SearchOptions) ([]*Email, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	if err := c.selectMailbox(opts.mailbox(), opts.readOnly()); err != nil {
		return nil, err
	}

	return c.fetchParsed(uids)
}

func (c *Client) fetchParsed(uids []uint32) ([]*Email, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	ch := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqset, []imap.FetchItem{imap.FetchUid, imap.FetchRFC822}, ch)
	}()

	var emails []*Email
	for msg := range ch {
		body := msg.GetBody(rfc822Section)
		if body == nil {
			log.WithField("uid", msg.Uid).Warn("gmail_message_without_body")
			continue
		}

		e, err := ParseEmail(msg.Uid, body)
		if err != nil {
			log.WithError(err).WithField("uid", msg.Uid).Warn("gmail_message_parse_failed")
			continue
		}

		emails = append(emails, e)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	sort.Slice(emails, func(i, j int) bool { return emails[i].UID < emails[j].UID })
	return emails, nil
}

// AttachmentsMatching collects the attachments of every message the
// query matches, skipping ignored filenames.
func (c *Client) AttachmentsMatching(query string, opts *SearchOptions) ([]Attachment, error) {
	emails, err := c.Search(query, opts)
	if err != nil {
		return nil, err
	}

	var attachments []Attachment
	for _, e := range emails {
		for _, a := range e.Attachments {
			if c.isIgnored(a.Filename) {
				log.WithFields(log.Fields{
					"uid":      e.UID,
					"filename": a.Filename,
				}).Debug("gmail_ignoring_attachment")
				continue
			}

			attachments = append(attachments, a)
		}
	}

	log.WithFields(log.Fields{
		"query":           query,
		"num_attachments": len(attachments),
	}).Debug("gmail_attachments_collected")
	return attachments, nil
}

// AttachmentsSince collects attachments from every message received on
// or after the given date.
func (c *Client) AttachmentsSince(since time.Time, opts *SearchOptions) ([]Attachment, error) {
	return c.AttachmentsMatching("has:attachment after:"+since.Format(gmailDate), opts)
}

// AttachmentsForDays is AttachmentsSince for "the last n days".
func (c *Client) AttachmentsForDays(days int, opts *SearchOptions) ([]Attachment, error) {
	return c.AttachmentsSince(time.Now().AddDate(0, 0, -days), opts)
}

func (c *Client) isIgnored(filename string) bool {
	for _, n := range c.cfg.IgnoredFilenames {
		if n == filename {
			return true
		}
	}
	return false
}

// Mailboxes lists every mailbox (Gmail labels included) visible to the
// account, sorted by name.
func (c *Client) Mailboxes() ([]MailboxInfo, error) {
	ch := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- c.client.List("", "*", ch)
	}()

	var mailboxes []MailboxInfo
	for mb := range ch {
		mailboxes = append(mailboxes, MailboxInfo{
			Name:       mb.Name,
			Delimiter:  mb.Delimiter,
			Attributes: mb.Attributes,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	sort.Slice(mailboxes, func(i, j int) bool { return mailboxes[i].Name < mailboxes[j].Name })
	return mailboxes, nil
}

// Trash labels the given UIDs \Trash, which moves them to Gmail's Bin.
// More than SafetyLimit messages is refused unless Force is set, so a
// bad search can't silently empty a mailbox.
func (c *Client) Trash(uids []uint32, opts *TrashOptions) error {
	if len(uids) == 0 {
		log.Debug("gmail_trash_nothing_to_do")
		return nil
	}

	var mbox string
	var expunge, force bool
	limit := uint(DefaultTrashLimit)
	if opts != nil {
		mbox = opts.Mailbox
		expunge = opts.Expunge
		force = opts.Force
		if opts.SafetyLimit != 0 {
			limit = opts.SafetyLimit
		}
	}

	if uint(len(uids)) > limit && !force {
		log.WithFields(log.Fields{
			"num_messages": len(uids),
			"limit":        limit,
		}).Warn("gmail_trash_refused")
		return fmt.Errorf("%w: %d messages, safety limit is %d", ErrTooManyMessages, len(uids), limit)
	}

	if err := c.ensureGmail(); err != nil {
		return err
	}

	if err := c.selectMailbox(mbox, false); err != nil {
		return err
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	log.WithFields(log.Fields{
		"uids":    uids,
		"expunge": expunge,
	}).Info("gmail_trashing_messages")

	if err := c.client.UidStore(seqset, imap.StoreItem("+X-GM-LABELS"), []interface{}{TrashLabel}, nil); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if expunge {
		if err := c.client.Expunge(nil); err != nil {
			return fmt.Errorf("expunge: %w", err)
		}
	}

	return nil
}

// Close deselects the current mailbox.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Logout() error {
	log.Debug("gmail_logging_out")
	return c.client.Logout()
}
