package communication

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WhatsApp is a client for the internal gateway that relays group
// messages with a document attachment.
type WhatsApp struct {
	client *http.Client
	apiURL string
	log    *zap.Logger
}

func NewWhatsApp(apiURL string, log *zap.Logger) *WhatsApp {
	return &WhatsApp{
		client: &http.Client{Timeout: 30 * time.Second},
		apiURL: apiURL,
		log:    log,
	}
}

// SendDocument posts a short message plus the file at filePath to the
// group chat. The file is removed after the attempt whether or not the
// gateway accepted it. An empty chat id skips the send and leaves the
// file in place.
func (w *WhatsApp) SendDocument(chatID, message, filePath string) error {
	if chatID == "" {
		w.log.Info("no chat id provided, skipping WhatsApp message")
		return nil
	}

	defer func() {
		if err := os.Remove(filePath); err != nil {
			w.log.Error("failed to delete report file", zap.String("file", filePath), zap.Error(err))
		}
	}()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="document"; filename="%s"`, filepath.Base(filePath)))
	header.Set("Content-Type", mimeTypeFor(filePath))
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to build attachment part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write attachment part: %w", err)
	}

	if err := mw.WriteField("id", chatID); err != nil {
		return err
	}
	if err := mw.WriteField("message", message); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, w.apiURL, &body)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach WhatsApp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WhatsApp gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	w.log.Info("report sent to WhatsApp group", zap.String("chat_id", chatID))
	return nil
}

// ReportMessage is the group message accompanying the attachment.
func ReportMessage(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("Team, here is the attendance report for %s", start.Format("Monday, 2006-01-02"))
	}
	return fmt.Sprintf("Team, here is the attendance report for the period: %s to %s",
		start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"))
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
