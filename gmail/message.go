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
	"crypto/md5" // #nosec G501, identification only
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/mail"

	enmime "github.com/jhillyerd/enmime/v2"
	log "github.com/sirupsen/logrus"
)

// ParseEmail reads an RFC 822 message and lifts out the fields and
// attachment parts this package cares about. Inline parts are not
// attachments; only parts with an attachment disposition are kept.
func ParseEmail(uid uint32, r io.Reader) (*Email, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	e := &Email{
		UID:     uid,
		Subject: env.GetHeader("Subject"),
		From:    env.GetHeader("From"),
		To:      env.GetHeader("To"),
		Text:    env.Text,
		HTML:    env.HTML,
	}

	if d := env.GetHeader("Date"); d != "" {
		ts, err := mail.ParseDate(d)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"uid":  uid,
				"date": d,
			}).Debug("gmail_unparseable_date_header")
		} else {
			e.Date = ts
		}
	}

	for _, p := range env.Attachments {
		e.Attachments = append(e.Attachments, newAttachment(e, p.FileName, p.ContentType, p.Content))
	}

	return e, nil
}

func newAttachment(e *Email, filename string, mimeType string, content []byte) Attachment {
	md5sum := md5.Sum(content) // #nosec G401
	sha := sha256.Sum256(content)

	return Attachment{
		Filename: filename,
		MimeType: mimeType,
		Content:  content,
		From:     e.From,
		To:       e.To,
		Subject:  e.Subject,
		Date:     e.Date,
		MD5Sum:   hex.EncodeToString(md5sum[:]),
		SHA256:   hex.EncodeToString(sha[:]),
	}
}
