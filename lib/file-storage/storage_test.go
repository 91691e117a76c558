package filestorage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	t.Run(`unsafe names are sanitized`, func(t *testing.T) {
		key := ObjectKey(FolderChat, "../../etc/my file (1).pdf")
		require.True(t, strings.HasPrefix(key, "chat/"))
		require.True(t, strings.HasSuffix(key, "-my_file_1_.pdf"))
		require.NotContains(t, key, "..")
	})

	t.Run(`url from ref`, func(t *testing.T) {
		storage := NewInstance(nil, "hire", "/api/v1/files/")
		require.Equal(t, "/api/v1/files/chat/a.txt", storage.URL("chat/a.txt"))
		require.Equal(t, "", storage.URL(""))
	})
}
