package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"
)

// ErrAttachmentTooLarge is returned when an attachment's declared size
// exceeds the configured limit, or when the stream runs past it mid-download.
var ErrAttachmentTooLarge = errors.New("attachment exceeds the size limit")

// attachmentFetcher retrieves the raw bytes of a message attachment.
type attachmentFetcher interface {
	Fetch(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// telegramFetcher downloads files from the Telegram file API with a bounded
// client timeout and a streaming byte cap.
type telegramFetcher struct {
	bot      *tele.Bot
	client   *http.Client
	maxBytes int64
}

func newTelegramFetcher(b *tele.Bot, maxBytes int64, timeout time.Duration) *telegramFetcher {
	return &telegramFetcher{
		bot:      b,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

func (f *telegramFetcher) Fetch(ctx context.Context, fileID string) (io.ReadCloser, error) {
	file, err := f.bot.FileByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("error resolving file path: %w", err)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", f.bot.URL, f.bot.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status fetching file: %s", resp.Status)
	}
	if resp.ContentLength > f.maxBytes {
		resp.Body.Close()
		return nil, ErrAttachmentTooLarge
	}

	return &cappedReadCloser{r: resp.Body, remaining: f.maxBytes}, nil
}

// cappedReadCloser aborts the stream once more than the allowed number of
// bytes has been read, guarding against undeclared or lying content lengths.
type cappedReadCloser struct {
	r         io.ReadCloser
	remaining int64
}

func (c *cappedReadCloser) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrAttachmentTooLarge
	}
	return n, err
}

func (c *cappedReadCloser) Close() error { return c.r.Close() }
