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

package config

import (
	"crypto/tls"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap"
)

func TestBuildGmailConfig(t *testing.T) {
	tests := []struct {
		name     string
		account  AccountConfig
		expected gmail.Config
		err      string
	}{
		{
			name: "defaults_with_password",
			account: AccountConfig{
				URL:        "imaps://imap.gmail.com:993/INBOX",
				AuthMethod: "normal",
				Username:   "user@gmail.com",
				Password:   "password",
			},
			expected: gmail.Config{
				HostPort: "imap.gmail.com:993",
				Mailbox:  "INBOX",
				Auth:     imap.NewNormalAuthenticator("user@gmail.com", "password"),
				TLS:      true,
			},
		},
		{
			name: "password_file",
			account: AccountConfig{
				URL:          "imaps://imap.gmail.com/Work",
				AuthMethod:   "normal",
				Username:     "user@gmail.com",
				PasswordFile: "testdata/testpass.txt",
			},
			expected: gmail.Config{
				HostPort: "imap.gmail.com:993",
				Mailbox:  "Work",
				Auth:     imap.NewNormalAuthenticator("user@gmail.com", "password"),
				TLS:      true,
			},
		},
		{
			name: "plain_imap_default_port",
			account: AccountConfig{
				URL:        "imap://localhost/INBOX",
				AuthMethod: "plain",
				Username:   "user",
				Password:   "password",
			},
			expected: gmail.Config{
				HostPort: "localhost:143",
				Mailbox:  "INBOX",
				Auth:     imap.NewSASLAuthenticator(sasl.NewPlainClient("", "user", "password")),
				TLS:      false,
			},
		},
		{
			name: "oauthbearer",
			account: AccountConfig{
				URL:         "imaps://imap.gmail.com:993/INBOX",
				AuthMethod:  "oauthbearer",
				Username:    "user@gmail.com",
				AccessToken: "token",
			},
			expected: gmail.Config{
				HostPort: "imap.gmail.com:993",
				Mailbox:  "INBOX",
				Auth: imap.NewOAuthBearerAuthenticator("user@gmail.com",
					oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"})),
				TLS: true,
			},
		},
		{
			name: "xoauth2",
			account: AccountConfig{
				URL:         "imaps://imap.gmail.com:993/INBOX",
				AuthMethod:  "xoauth2",
				Username:    "user@gmail.com",
				AccessToken: "token",
			},
			expected: gmail.Config{
				HostPort: "imap.gmail.com:993",
				Mailbox:  "INBOX",
				Auth: imap.NewXOAuth2Authenticator("user@gmail.com",
					oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"})),
				TLS: true,
			},
		},
		{
			name: "tls_skip_verify",
			account: AccountConfig{
				URL:           "imaps://imap.gmail.com:993/INBOX",
				AuthMethod:    "normal",
				Username:      "user@gmail.com",
				Password:      "password",
				TLSSkipVerify: true,
			},
			expected: gmail.Config{
				HostPort:  "imap.gmail.com:993",
				Mailbox:   "INBOX",
				Auth:      imap.NewNormalAuthenticator("user@gmail.com", "password"),
				TLS:       true,
				TLSConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
			},
		},
		{
			name: "invalid_scheme",
			account: AccountConfig{
				URL:        "http://imap.gmail.com/INBOX",
				AuthMethod: "normal",
				Username:   "user",
				Password:   "password",
			},
			err: "invalid uri scheme",
		},
		{
			name: "unsupported_auth_method",
			account: AccountConfig{
				URL:        "imaps://imap.gmail.com:993/INBOX",
				AuthMethod: "kerberos",
				Username:   "user",
				Password:   "password",
			},
			err: "unsupported auth method: kerberos",
		},
		{
			name: "missing_password",
			account: AccountConfig{
				URL:        "imaps://imap.gmail.com:993/INBOX",
				AuthMethod: "normal",
				Username:   "user",
			},
			err: "at least one of the \"password\" or \"password-file\" flags is required",
		},
		{
			name: "missing_token",
			account: AccountConfig{
				URL:        "imaps://imap.gmail.com:993/INBOX",
				AuthMethod: "oauthbearer",
				Username:   "user@gmail.com",
			},
			err: "at least one of the \"access-token\" or \"access-token-file\" flags is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := gmail.Config{}
			err := tc.account.BuildGmailConfig(&cfg)

			if tc.err != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}
