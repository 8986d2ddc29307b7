package testutil

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sustainbite/internal/utils/storage"
)

const fakeBucketURL = "https://fake-bucket.local/"

// Storage records uploads instead of talking to S3.
type Storage struct {
	mu       sync.Mutex
	Uploaded []string
	Deleted  []string
	Err      error
}

var _ storage.AwsS3 = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	if file == nil {
		return "", errors.New("file is required")
	}
	key := path.Join(folder, fileName+path.Ext(file.Filename))
	s.Uploaded = append(s.Uploaded, key)
	return key, nil
}

func (s *Storage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *Storage) GetPublicLinkKey(objectKey string) string {
	return fakeBucketURL + objectKey
}

func (s *Storage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeBucketURL) {
		return ""
	}
	return strings.TrimPrefix(link, fakeBucketURL)
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records sent mail. Err, when set, is returned from every send.
type Mailer struct {
	mu   sync.Mutex
	sent []SentMail
	Err  error
}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) SendMail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *Mailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}

// FileHeader builds a multipart.FileHeader holding content, as Fiber would
// hand it to a handler.
func FileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}
