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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testMessage = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com\r\n" +
	"Subject: Quarterly report\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=deadbeef\r\n" +
	"\r\n" +
	"--deadbeef\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Report attached.\r\n" +
	"--deadbeef\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=report.pdf\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"aGVsbG8sIHdvcmxk\r\n" +
	"--deadbeef\r\n" +
	"Content-Type: image/png\r\n" +
	"Content-Disposition: inline; filename=logo.png\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"aWNvbg==\r\n" +
	"--deadbeef--\r\n"

func TestParseEmail(t *testing.T) {
	e, err := ParseEmail(1444, strings.NewReader(testMessage))
	assert.NoError(t, err)

	assert.Equal(t, uint32(1444), e.UID)
	assert.Equal(t, "Alice <alice@example.com>", e.From)
	assert.Equal(t, "bob@example.com", e.To)
	assert.Equal(t, "Quarterly report", e.Subject)
	assert.Equal(t, time.Date(2016, 5, 11, 14, 31, 59, 0, time.UTC), e.Date.UTC())
	assert.Equal(t, "Report attached.", strings.TrimSpace(e.Text))

	// The inline logo must not be reported as an attachment.
	assert.Len(t, e.Attachments, 1)

	att := e.Attachments[0]
	assert.Equal(t, "report.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.MimeType)
	assert.Equal(t, []byte("hello, world"), att.Content)
	assert.Equal(t, "e4d7f1b4ed2e42d15898f4b27b019da4", att.MD5Sum)
	assert.Equal(t, "09ca7e4eaa6e8ae9c7d261167129184883644d07dfba7cbfbc4c8a2e08360d5b", att.SHA256)

	// Attachments carry the owning message's headers.
	assert.Equal(t, e.From, att.From)
	assert.Equal(t, e.Subject, att.Subject)
	assert.Equal(t, e.Date, att.Date)
}

func TestParseEmailBadDate(t *testing.T) {
	msg := "From: alice@example.com\r\n" +
		"Date: not a date\r\n" +
		"Subject: x\r\n" +
		"\r\n" +
		"body\r\n"

	e, err := ParseEmail(1, strings.NewReader(msg))
	assert.NoError(t, err)
	assert.True(t, e.Date.IsZero())
}
