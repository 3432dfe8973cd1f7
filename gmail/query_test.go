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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	t.Run("canonical_key_order", func(t *testing.T) {
		query, err := BuildQuery(Params{
			"after": "2011/09/07",
			"has":   "attachment",
			"from":  "alice@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, "from:alice@example.com has:attachment after:2011/09/07", query)
	})

	t.Run("quotes_values_with_whitespace", func(t *testing.T) {
		query, err := BuildQuery(Params{"subject": "quarterly report"})
		assert.NoError(t, err)
		assert.Equal(t, `subject:"quarterly report"`, query)
	})

	t.Run("unknown_key", func(t *testing.T) {
		_, err := BuildQuery(Params{"sender": "alice@example.com"})
		assert.ErrorIs(t, err, ErrUnknownSearchKey)
	})

	t.Run("empty_params", func(t *testing.T) {
		_, err := BuildQuery(Params{})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("empty_values", func(t *testing.T) {
		_, err := BuildQuery(Params{"from": "", "to": ""})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("all_keys_accepted", func(t *testing.T) {
		for _, k := range SearchKeys {
			_, err := BuildQuery(Params{k: "value"})
			assert.NoError(t, err)
		}
	})
}
