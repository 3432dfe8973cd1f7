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
	"strings"
)

// Params maps Gmail search operators to their values, e.g.
// {"from": "alice@example.com", "has": "attachment"}.
// See https://support.google.com/mail/answer/7190 for operator semantics.
type Params map[string]string

// SearchKeys are the operators BuildQuery accepts, in the order they
// are emitted.
var SearchKeys = []string{
	"from",
	"to",
	"subject",
	"label",
	"list",
	"filename",
	"has",
	"in",
	"is",
	"cc",
	"bcc",
	"after",
	"before",
	"older",
	"newer",
	"older_than",
	"newer_than",
	"size",
	"larger",
	"smaller",
	"rfc822msgid",
}

var searchKeySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SearchKeys))
	for _, k := range SearchKeys {
		m[k] = struct{}{}
	}
	return m
}()

// BuildQuery renders params as an X-GM-RAW query string. Keys outside
// SearchKeys are an error, as a silently dropped operator turns a
// narrow search into a mailbox-wide one.
func BuildQuery(params Params) (string, error) {
	for k := range params {
		if _, ok := searchKeySet[k]; !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownSearchKey, k)
		}
	}

	sb := strings.Builder{}
	for _, k := range SearchKeys {
		v := params[k]
		if v == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(quoteValue(v))
	}

	if sb.Len() == 0 {
		return "", ErrEmptyQuery
	}

	return sb.String(), nil
}

func quoteValue(v string) string {
	if strings.ContainsAny(v, " \t") && !strings.HasPrefix(v, `"`) {
		return `"` + v + `"`
	}
	return v
}
