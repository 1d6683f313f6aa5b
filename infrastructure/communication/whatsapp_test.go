package communication

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func writeAttachment(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attreport_2025-03-10.xlsx")
	assert.NoError(t, os.WriteFile(path, []byte("workbook-bytes"), 0o644))
	return path
}

func TestSendDocument(t *testing.T) {
	var gotChatID, gotMessage, gotFilename, gotMime string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1 << 20))
		gotChatID = r.FormValue("id")
		gotMessage = r.FormValue("message")

		file, header, err := r.FormFile("document")
		assert.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotMime = header.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(file)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	path := writeAttachment(t)
	wa := NewWhatsApp(server.URL, zap.NewNop())

	err := wa.SendDocument("1203630@g.us", "Team, here is the attendance report", path)
	assert.NoError(t, err)

	assert.Equal(t, "1203630@g.us", gotChatID)
	assert.Equal(t, "Team, here is the attendance report", gotMessage)
	assert.Equal(t, "attreport_2025-03-10.xlsx", gotFilename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", gotMime)
	assert.Equal(t, []byte("workbook-bytes"), gotBody)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "attachment must be removed after a successful send")
}

func TestSendDocumentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session not connected", http.StatusBadGateway)
	}))
	defer server.Close()

	path := writeAttachment(t)
	wa := NewWhatsApp(server.URL, zap.NewNop())

	err := wa.SendDocument("1203630@g.us", "report", path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "attachment is removed even when delivery fails")
}

func TestSendDocumentNoChatID(t *testing.T) {
	path := writeAttachment(t)
	wa := NewWhatsApp("http://unused.invalid", zap.NewNop())

	assert.NoError(t, wa.SendDocument("", "report", path))

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "no attempt means the file stays in place")
}

func TestReportMessage(t *testing.T) {
	start := mustTime(t, "2025-03-10 00:00:00")
	sameDayEnd := mustTime(t, "2025-03-10 23:59:59")
	assert.Equal(t,
		"Team, here is the attendance report for Monday, 2025-03-10",
		ReportMessage(start, sameDayEnd))

	rangeEnd := mustTime(t, "2025-03-12 23:59:59")
	assert.Equal(t,
		"Team, here is the attendance report for the period: 2025-03-10 00:00:00 to 2025-03-12 23:59:59",
		ReportMessage(start, rangeEnd))
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", s)
	assert.NoError(t, err)
	return parsed
}
