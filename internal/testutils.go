package internal

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/emersion/go-message"
	"github.com/stretchr/testify/assert"
)

// BuildTestIMAPServer starts an in-process IMAP server backed by the
// in-memory backend. It has a single "username"/"password" account
// whose INBOX starts out empty.
func BuildTestIMAPServer(t *testing.T) (*server.Server, string, *memory.Mailbox) {
	be := memory.New()
	user, err := be.Login(nil, "username", "password")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mb, err := user.GetMailbox("INBOX")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mailbox := mb.(*memory.Mailbox)
	mailbox.Messages = nil

	s := server.New(be)
	t.Cleanup(func() { _ = s.Close() })

	s.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "localhost:0")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	go func() { _ = s.Serve(l) }()

	return s, l.Addr().String(), mailbox
}

// SeedTestMessage places a plain-text message directly into the
// in-memory mailbox, bypassing APPEND.
func SeedTestMessage(t *testing.T, mailbox *memory.Mailbox, uid uint32, messageID string) {
	hdr := message.Header{}
	hdr.Add("From", "from@example.com")
	hdr.Add("To", "to@example.com")
	hdr.Add("Subject", "Test Email")
	hdr.Add("Date", "Wed, 11 May 2016 14:31:59 +0000")
	hdr.Add("Content-Type", "text/plain")
	hdr.Add("Message-ID", messageID)

	msg, err := message.New(hdr, strings.NewReader("Hello!"))
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	bb := new(bytes.Buffer)
	err = msg.WriteTo(bb)
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mailbox.Messages = append(mailbox.Messages, &memory.Message{
		Uid:   uid,
		Date:  time.Now(),
		Size:  uint32(bb.Len()),
		Flags: []string{},
		Body:  bb.Bytes(),
	})
}
