package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run(`unconfigured client is a no-op`, func(t *testing.T) {
		require.NoError(t, Connect("", "", "", "", true))
		require.False(t, Instance.IsConfigured())
		require.NoError(t, Instance.SendEMail("seeker@example.com", "subject", "text"))
	})

	t.Run(`message headers`, func(t *testing.T) {
		msg := buildMessage("robot@example.com", "seeker@example.com", "Application Accepted!", "hello")
		require.True(t, strings.HasPrefix(msg, "From: robot@example.com\r\n"))
		require.Contains(t, msg, "To: seeker@example.com\r\n")
		require.Contains(t, msg, "Subject: Hire - Application Accepted!\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nhello\r\n"))
	})
}
