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
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"github.com/vs49688/gmailgrab/gmail"
	"github.com/vs49688/gmailgrab/imap"
)

func DefaultAccountConfig() AccountConfig {
	return AccountConfig{
		URL:           "imaps://imap.gmail.com:993/INBOX",
		AuthMethod:    "normal",
		TLSSkipVerify: false,
		Debug:         false,
	}
}

func (cfg *AccountConfig) makeAccountParameters() []cli.Flag {
	def := DefaultAccountConfig()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "imap url, the path names the default mailbox",
			EnvVars:     []string{"GMAILGRAB_URL"},
			Destination: &cfg.URL,
			Value:       def.URL,
		},
		&cli.StringFlag{
			Name:        "auth-method",
			Usage:       "auth method (normal, plain, oauthbearer, xoauth2)",
			EnvVars:     []string{"GMAILGRAB_AUTH_METHOD"},
			Destination: &cfg.AuthMethod,
			Value:       def.AuthMethod,
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "imap username",
			EnvVars:     []string{"GMAILGRAB_USERNAME"},
			Destination: &cfg.Username,
			Required:    true,
			Value:       def.Username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "imap password",
			EnvVars:     []string{"GMAILGRAB_PASSWORD"},
			Destination: &cfg.Password,
			Value:       def.Password,
		},
		&cli.StringFlag{
			Name:        "password-file",
			Usage:       "imap password file",
			EnvVars:     []string{"GMAILGRAB_PASSWORD_FILE"},
			Destination: &cfg.PasswordFile,
			Value:       def.PasswordFile,
		},
		&cli.StringFlag{
			Name:        "access-token",
			Usage:       "oauth2 access token",
			EnvVars:     []string{"GMAILGRAB_ACCESS_TOKEN"},
			Destination: &cfg.AccessToken,
			Value:       def.AccessToken,
		},
		&cli.StringFlag{
			Name:        "access-token-file",
			Usage:       "oauth2 access token file",
			EnvVars:     []string{"GMAILGRAB_ACCESS_TOKEN_FILE"},
			Destination: &cfg.AccessTokenFile,
			Value:       def.AccessTokenFile,
		},
		&cli.BoolFlag{
			Name:        "tls-skip-verify",
			Usage:       "skip tls verification",
			EnvVars:     []string{"GMAILGRAB_TLS_SKIP_VERIFY"},
			Destination: &cfg.TLSSkipVerify,
			Value:       def.TLSSkipVerify,
		},
		&cli.BoolFlag{
			Name:        "imap-debug",
			Usage:       "dump the imap conversation to stderr",
			EnvVars:     []string{"GMAILGRAB_IMAP_DEBUG"},
			Destination: &cfg.Debug,
			Value:       def.Debug,
		},
	}
}

func extractUrl(u *url.URL) (string, string, bool, error) {
	var defaultPort string
	var useTLS bool
	switch strings.ToLower(u.Scheme) {
	case "imap":
		defaultPort = "143"
		useTLS = false
	case "imaps":
		defaultPort = "993"
		useTLS = true
	default:
		return "", "", false, errInvalidScheme
	}

	host := u.Hostname()
	port := u.Port()

	if port == "" {
		port = defaultPort
	}

	return net.JoinHostPort(host, port), strings.TrimPrefix(u.Path, "/"), useTLS, nil
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

func (cfg *AccountConfig) validateUserPass() (string, string, error) {
	if cfg.Username == "" {
		return "", "", fmt.Errorf("\"username\" is required when using %v auth", cfg.AuthMethod)
	}

	var password string

	if cfg.Password != "" {
		password = cfg.Password
	} else if cfg.PasswordFile != "" {
		pass, err := readSecretFile(cfg.PasswordFile)
		if err != nil {
			return "", "", err
		}

		password = pass
	} else {
		return "", "", fmt.Errorf("at least one of the \"password\" or \"password-file\" flags is required")
	}

	return cfg.Username, password, nil
}

func (cfg *AccountConfig) validateToken() (string, oauth2.TokenSource, error) {
	if cfg.Username == "" {
		return "", nil, fmt.Errorf("\"username\" is required when using %v auth", cfg.AuthMethod)
	}

	var token string

	if cfg.AccessToken != "" {
		token = cfg.AccessToken
	} else if cfg.AccessTokenFile != "" {
		tok, err := readSecretFile(cfg.AccessTokenFile)
		if err != nil {
			return "", nil, err
		}

		token = tok
	} else {
		return "", nil, fmt.Errorf("at least one of the \"access-token\" or \"access-token-file\" flags is required")
	}

	return cfg.Username, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}), nil
}

// BuildGmailConfig resolves the flags into a gmail.Config.
func (cfg *AccountConfig) BuildGmailConfig(gmailConfig *gmail.Config) error {
	accountURL, err := url.Parse(cfg.URL)
	if err != nil {
		return err
	}

	hostPort, mailbox, wantTLS, err := extractUrl(accountURL)
	if err != nil {
		return err
	}

	gmailConfig.HostPort = hostPort
	gmailConfig.Mailbox = mailbox

	switch strings.ToUpper(cfg.AuthMethod) {
	case "NORMAL":
		user, pass, err := cfg.validateUserPass()
		if err != nil {
			return err
		}

		gmailConfig.Auth = imap.NewNormalAuthenticator(user, pass)
	case sasl.Plain:
		user, pass, err := cfg.validateUserPass()
		if err != nil {
			return err
		}

		gmailConfig.Auth = imap.NewSASLAuthenticator(sasl.NewPlainClient("", user, pass))
	case sasl.OAuthBearer:
		user, source, err := cfg.validateToken()
		if err != nil {
			return err
		}

		gmailConfig.Auth = imap.NewOAuthBearerAuthenticator(user, source)
	case imap.XOAuth2:
		user, source, err := cfg.validateToken()
		if err != nil {
			return err
		}

		gmailConfig.Auth = imap.NewXOAuth2Authenticator(user, source)
	default:
		return fmt.Errorf("unsupported auth method: %v", cfg.AuthMethod)
	}

	gmailConfig.TLS = wantTLS
	gmailConfig.TLSConfig = nil
	if cfg.TLSSkipVerify {
		// #nosec G402
		gmailConfig.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	gmailConfig.Debug = cfg.Debug
	return nil
}
